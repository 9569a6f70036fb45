package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (cuentas de crédito).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Search(query string) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	UpdateBalance(id string, newBalance decimal.Decimal) error
	Delete(id string) error
}
