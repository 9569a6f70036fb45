package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente con cuenta de crédito.
// CurrentBalance es el monto que el cliente debe: sube con ventas a crédito
// y baja con pagos/abonos. Invariante blanda: CurrentBalance <= CreditLimit
// después de cada venta a crédito, salvo autorización explícita del operador.
type Customer struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	Address        string          `json:"address,omitempty"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
