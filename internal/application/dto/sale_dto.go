package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItemRequest un renglón del carrito: producto y cantidad.
type CheckoutItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// CheckoutRequest entrada para completar una venta.
// Tendered solo aplica a pago cash; CustomerID solo a credit.
// AllowOverLimit confirma una venta a crédito que excede el límite del cliente.
type CheckoutRequest struct {
	Items          []CheckoutItemRequest `json:"items" validate:"required,min=1"`
	PaymentMethod  string                `json:"payment_method" validate:"required,oneof=cash credit"`
	Tendered       decimal.Decimal       `json:"tendered"`
	CustomerID     string                `json:"customer_id"`
	AllowOverLimit bool                  `json:"allow_over_limit"`
}

// SaleItemResponse renglón de venta (snapshot del producto al momento de vender).
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CustomerID    string             `json:"customer_id,omitempty"`
	UserID        string             `json:"user_id"`
}

// CheckoutResponse salida del checkout: la venta y, para cash, el cambio.
type CheckoutResponse struct {
	Sale   SaleResponse     `json:"sale"`
	Change *decimal.Decimal `json:"change,omitempty"`
}

// SaleListResponse lista de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}
