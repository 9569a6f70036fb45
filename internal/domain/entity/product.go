package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// Stock es entero no negativo; solo se muta vía UpdateStock del repositorio
// (actualización condicional) para que stock >= 0 se sostenga tras cada commit.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"` // precio de venta
	Cost        decimal.Decimal `json:"cost"`  // costo de adquisición
	Stock       int64           `json:"stock"`
	Category    string          `json:"category,omitempty"`
	Barcode     string          `json:"barcode,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
