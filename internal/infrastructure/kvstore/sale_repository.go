package kvstore

import (
	"sort"

	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre el almacén de colecciones.
// Las ventas son inmutables: solo append y lecturas.
type SaleRepo struct {
	store *Store
}

// NewSaleRepository construye el adaptador sobre el almacén local.
func NewSaleRepository(store *Store) *SaleRepo {
	return &SaleRepo{store: store}
}

func (r *SaleRepo) all() ([]entity.Sale, error) {
	var list []entity.Sale
	if err := r.store.Read(CollectionSales, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Create agrega la venta a la colección.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	list, err := r.all()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == sale.ID {
			return domain.ErrDuplicate
		}
	}
	list = append(list, *sale)
	return r.store.Write(CollectionSales, list)
}

// GetByID obtiene una venta por ID. Retorna (nil, nil) si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			s := list[i]
			return &s, nil
		}
	}
	return nil, nil
}

// List lista ventas que cumplen el filtro, más recientes primero.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	var out []*entity.Sale
	for i := range list {
		s := list[i]
		if filter.UserID != "" && s.UserID != filter.UserID {
			continue
		}
		if filter.PaymentMethod != "" && s.PaymentMethod != filter.PaymentMethod {
			continue
		}
		if !filter.From.IsZero() && s.Timestamp.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && s.Timestamp.After(filter.To) {
			continue
		}
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}
