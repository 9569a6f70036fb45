package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago válidos para Sale.
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
)

// SaleItem línea inmutable de una venta: snapshot del producto al momento
// del commit. ProductID es referencia débil; borrar el producto no altera
// las ventas históricas.
type SaleItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int64           `json:"quantity"`
}

// Sale registro inmutable de un checkout completado. Se crea exactamente una
// vez por venta exitosa; no existe operación de update ni delete sobre Sale.
// Subtotal, Tax y Total se persisten ya redondeados a 2 decimales.
type Sale struct {
	ID            string          `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Items         []SaleItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`        // cash | credit
	CustomerID    string          `json:"customerId,omitempty"` // presente solo en ventas a crédito
	UserID        string          `json:"userId"`               // operador que completó la venta
}
