package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para crear un cliente de cuenta corriente.
type CreateCustomerRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Address     string          `json:"address"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// UpdateCustomerRequest entrada para actualizar un cliente (sin balance: el
// balance se mueve vía ventas a crédito y abonos).
type UpdateCustomerRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Phone       *string          `json:"phone"`
	Email       *string          `json:"email" validate:"omitempty,email"`
	Address     *string          `json:"address"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
}

// AdjustBalanceRequest ajuste manual del balance: Amount positivo carga deuda,
// negativo registra un abono. Force permite exceder el límite de crédito o
// dejar balance negativo (saldo a favor) con confirmación explícita.
type AdjustBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Force  bool            `json:"force"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	Address         string          `json:"address"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
