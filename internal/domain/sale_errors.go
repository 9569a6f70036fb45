package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Etapas de la secuencia de commit de una venta. Se reportan en StorageError
// y CommitError para que el operador sepa exactamente qué escritura falló.
const (
	StageSaleWrite    = "sale-write"
	StageBalanceWrite = "balance-write"
	StageStockWrite   = "stock-write"
)

// InsufficientTenderError el efectivo entregado no cubre el total.
type InsufficientTenderError struct {
	Tendered decimal.Decimal
	Total    decimal.Decimal
}

func (e *InsufficientTenderError) Error() string {
	return fmt.Sprintf("efectivo insuficiente: entregado %s, total %s (faltan %s)",
		e.Tendered.StringFixed(2), e.Total.StringFixed(2), e.Shortfall().StringFixed(2))
}

// Shortfall devuelve el monto faltante (positivo).
func (e *InsufficientTenderError) Shortfall() decimal.Decimal {
	return e.Total.Sub(e.Tendered).Round(2)
}

// CreditLimitExceededError el balance resultante superaría el cupo del cliente.
// Recuperable: el caller puede reintentar con el flag de autorización explícita.
type CreditLimitExceededError struct {
	CustomerID     string
	CurrentBalance decimal.Decimal
	CreditLimit    decimal.Decimal
	AttemptedTotal decimal.Decimal
}

func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf("la venta excede el cupo de crédito del cliente: balance actual %s, cupo %s, total intentado %s",
		e.CurrentBalance.StringFixed(2), e.CreditLimit.StringFixed(2), e.AttemptedTotal.StringFixed(2))
}

// StockShortage una línea del carrito que excede el stock disponible.
type StockShortage struct {
	ProductID string
	Name      string
	Requested int64
	Available int64
}

// InsufficientStockError una o más líneas exceden el stock actual.
// Se levanta antes de cualquier escritura; incluye todas las líneas ofensoras.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s: solicitado %d, disponible %d", s.Name, s.Requested, s.Available))
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

// StorageError falla de lectura/escritura del almacén en una etapa concreta.
// ProductID solo está presente cuando Stage es StageStockWrite.
type StorageError struct {
	Stage     string
	ProductID string
	Err       error
}

func (e *StorageError) Error() string {
	if e.ProductID != "" {
		return fmt.Sprintf("almacén (%s, producto %s): %v", e.Stage, e.ProductID, e.Err)
	}
	return fmt.Sprintf("almacén (%s): %v", e.Stage, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// CommitError la venta quedó persistida pero una o más mutaciones dependientes
// fallaron (anomalía de commit parcial). No hay rollback automático: el registro
// de venta es la fuente de verdad y el operador reconcilia stock/balances con
// la información de Failures.
type CommitError struct {
	SaleID   string
	Failures []*StorageError
}

func (e *CommitError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("venta %s persistida con mutaciones incompletas: %s", e.SaleID, strings.Join(parts, "; "))
}
