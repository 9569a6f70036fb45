package kvstore

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre el almacén de colecciones.
type CustomerRepo struct {
	store *Store
}

// NewCustomerRepository construye el adaptador sobre el almacén local.
func NewCustomerRepository(store *Store) *CustomerRepo {
	return &CustomerRepo{store: store}
}

func (r *CustomerRepo) all() ([]entity.Customer, error) {
	var list []entity.Customer
	if err := r.store.Read(CollectionCustomers, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Create agrega el cliente a la colección.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	list, err := r.all()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == customer.ID {
			return domain.ErrDuplicate
		}
	}
	list = append(list, *customer)
	return r.store.Write(CollectionCustomers, list)
}

// GetByID obtiene un cliente por ID. Retorna (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			c := list[i]
			return &c, nil
		}
	}
	return nil, nil
}

// List lista clientes ordenados por nombre, con paginación.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

// Search busca por nombre, teléfono o email.
func (r *CustomerRepo) Search(query string) ([]*entity.Customer, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []*entity.Customer
	for i := range list {
		c := list[i]
		if strings.Contains(strings.ToLower(c.Name), q) ||
			(c.Phone != "" && strings.Contains(c.Phone, query)) ||
			(c.Email != "" && strings.Contains(strings.ToLower(c.Email), q)) {
			out = append(out, &c)
		}
	}
	return out, nil
}

// Update actualiza los datos del cliente. No toca CurrentBalance: el balance
// se muta solo vía UpdateBalance.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	list, err := r.all()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == customer.ID {
			balance := list[i].CurrentBalance
			list[i] = *customer
			list[i].CurrentBalance = balance
			return r.store.Write(CollectionCustomers, list)
		}
	}
	return domain.ErrNotFound
}

// UpdateBalance escribe el nuevo balance redondeado a 2 decimales.
func (r *CustomerRepo) UpdateBalance(id string, newBalance decimal.Decimal) error {
	list, err := r.all()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list[i].CurrentBalance = newBalance.Round(2)
			list[i].UpdatedAt = time.Now()
			return r.store.Write(CollectionCustomers, list)
		}
	}
	return domain.ErrNotFound
}

// Delete elimina el cliente por ID. Idempotente.
func (r *CustomerRepo) Delete(id string) error {
	list, err := r.all()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return r.store.Write(CollectionCustomers, list)
		}
	}
	return nil
}
