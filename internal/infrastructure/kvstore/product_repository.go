package kvstore

import (
	"sort"
	"strings"

	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre el almacén de
// colecciones: lee la lista completa, la modifica y la reescribe.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador sobre el almacén local.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) all() ([]entity.Product, error) {
	var list []entity.Product
	if err := r.store.Read(CollectionProducts, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Create agrega el producto a la colección. ID duplicado retorna ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	list, err := r.all()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == product.ID {
			return domain.ErrDuplicate
		}
		if product.Barcode != "" && list[i].Barcode == product.Barcode {
			return domain.ErrDuplicate
		}
	}
	list = append(list, *product)
	return r.store.Write(CollectionProducts, list)
}

// GetByID obtiene un producto por ID. Retorna (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			p := list[i]
			return &p, nil
		}
	}
	return nil, nil
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Barcode == barcode {
			p := list[i]
			return &p, nil
		}
	}
	return nil, nil
}

// List lista productos ordenados por nombre, con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

// Search busca por nombre, descripción o código de barras (como el buscador del POS).
func (r *ProductRepo) Search(query string) ([]*entity.Product, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []*entity.Product
	for i := range list {
		p := list[i]
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			(p.Barcode != "" && strings.Contains(p.Barcode, query)) {
			out = append(out, &p)
		}
	}
	return out, nil
}

// ListLowStock productos con stock en o por debajo del umbral.
func (r *ProductRepo) ListLowStock(threshold int64) ([]*entity.Product, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	var out []*entity.Product
	for i := range list {
		if list[i].Stock <= threshold {
			p := list[i]
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}

// Update actualiza los datos del producto. No toca Stock: el stock se muta
// solo vía UpdateStock.
func (r *ProductRepo) Update(product *entity.Product) error {
	list, err := r.all()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == product.ID {
			stock := list[i].Stock
			list[i] = *product
			list[i].Stock = stock
			return r.store.Write(CollectionProducts, list)
		}
	}
	return domain.ErrNotFound
}

// UpdateStock actualización condicional del stock: escribe newStock solo si
// el stock actual sigue siendo expected; si no, retorna ErrConflict para que
// la carrera sea detectable. newStock negativo se rechaza siempre.
func (r *ProductRepo) UpdateStock(id string, expected, newStock int64) error {
	if newStock < 0 {
		return domain.ErrInvalidInput
	}
	list, err := r.all()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			if list[i].Stock != expected {
				return domain.ErrConflict
			}
			list[i].Stock = newStock
			return r.store.Write(CollectionProducts, list)
		}
	}
	return domain.ErrNotFound
}

// Delete elimina el producto. No cascada a ventas históricas: Sale.Items
// guarda snapshots, no referencias.
func (r *ProductRepo) Delete(id string) error {
	list, err := r.all()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return r.store.Write(CollectionProducts, list)
		}
	}
	return nil
}

// paginate corta la lista según limit/offset. limit <= 0 = sin límite.
func paginate[T any](list []T, limit, offset int) []*T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*T, 0, end-offset)
	for i := offset; i < end; i++ {
		item := list[i]
		out = append(out, &item)
	}
	return out
}
