package repository

import (
	"time"

	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
)

// SaleFilter filtros para listar ventas. Campos en cero = sin filtro.
type SaleFilter struct {
	UserID        string
	PaymentMethod string // cash | credit
	From          time.Time
	To            time.Time
}

// SaleRepository define el puerto de persistencia para Sale.
// Sale es inmutable: solo existen Create y lecturas, nunca update/delete.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(filter SaleFilter) ([]*entity.Sale, error)
}
