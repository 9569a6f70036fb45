package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
)

// Session identidad explícita del operador. Se pasa como valor al motor en
// lugar de leerse de estado ambiente, para que el commit sea determinista
// y testeable sin framework alrededor.
type Session struct {
	UserID string
	Role   string
}

// CheckoutInput entrada para completar una venta.
type CheckoutInput struct {
	Cart          *Cart
	PaymentMethod string          // cash | credit
	Tendered      decimal.Decimal // solo cash
	CustomerID    string          // solo credit
	// AllowOverLimit autoriza explícitamente exceder el cupo de crédito.
	// Sin este flag el motor rechaza el exceso; nunca lo permite en silencio.
	AllowOverLimit bool
	Session        Session
}

// Engine motor de transacción de venta. El almacén subyacente no tiene
// primitiva de transacción multi-registro, así que el motor impone su propio
// orden y política de fallo para acotar la inconsistencia:
//
//  1. todas las precondiciones se validan contra lecturas frescas, antes de
//     cualquier escritura (fallo aquí = cero efectos secundarios);
//  2. la venta se persiste PRIMERO: es la fuente de verdad durable; si una
//     mutación posterior falla, el operador reconcilia desde el registro de
//     venta en lugar de perder la evidencia de la transacción;
//  3. balance y stock se escriben después, en ese orden; los fallos no se
//     revierten: se reportan como CommitError con la etapa exacta.
type Engine struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	taxRate   decimal.Decimal
}

// NewEngine construye el motor con sus repositorios y la tasa de impuesto configurada.
func NewEngine(
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
	taxRate decimal.Decimal,
) *Engine {
	return &Engine{
		products:  products,
		customers: customers,
		sales:     sales,
		taxRate:   taxRate,
	}
}

// TaxRate expone la tasa de impuesto configurada (para calcular vuelto
// estimado fuera del motor).
func (e *Engine) TaxRate() decimal.Decimal {
	return e.taxRate
}

// stockRead stock leído durante la validación; expected alimenta la
// escritura condicional para que una carrera entre lectura y escritura
// aparezca como conflicto en vez de perderse.
type stockRead struct {
	line     CartLine
	expected int64
}

// CompleteSale valida las precondiciones y ejecuta la secuencia de commit.
//
// Errores de precondición (sin efectos secundarios): domain.ErrEmptyCart,
// domain.ErrNoCustomerSelected, *domain.InsufficientTenderError,
// *domain.CreditLimitExceededError, *domain.InsufficientStockError.
//
// Errores de escritura: *domain.StorageError si falla la escritura de la
// venta (nada quedó persistido); *domain.CommitError si la venta quedó
// escrita pero balance o stock fallaron (anomalía de commit parcial,
// reconciliable desde el registro de venta).
func (e *Engine) CompleteSale(ctx context.Context, in CheckoutInput) (*entity.Sale, error) {
	if in.PaymentMethod != entity.PaymentCash && in.PaymentMethod != entity.PaymentCredit {
		return nil, domain.ErrInvalidInput
	}
	if in.Cart == nil || in.Cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if in.Session.UserID == "" {
		return nil, domain.ErrInvalidInput
	}

	totals := in.Cart.ComputeTotals(e.taxRate)

	if in.PaymentMethod == entity.PaymentCredit && in.CustomerID == "" {
		return nil, domain.ErrNoCustomerSelected
	}
	if in.PaymentMethod == entity.PaymentCash && in.Tendered.LessThan(totals.Total) {
		return nil, &domain.InsufficientTenderError{Tendered: in.Tendered, Total: totals.Total}
	}

	// Crédito: releer balance y cupo del almacén, no de una copia en memoria.
	var newBalance decimal.Decimal
	if in.PaymentMethod == entity.PaymentCredit {
		customer, err := e.customers.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		newBalance = customer.CurrentBalance.Add(totals.Total).Round(2)
		if newBalance.GreaterThan(customer.CreditLimit) && !in.AllowOverLimit {
			return nil, &domain.CreditLimitExceededError{
				CustomerID:     customer.ID,
				CurrentBalance: customer.CurrentBalance,
				CreditLimit:    customer.CreditLimit,
				AttemptedTotal: totals.Total,
			}
		}
	}

	// Stock: releer cada producto y juntar TODAS las líneas ofensoras antes
	// de fallar; un fallo aquí bloquea el commit completo sin escribir nada.
	lines := in.Cart.Lines()
	reads := make([]stockRead, 0, len(lines))
	var shortages []domain.StockShortage
	for _, line := range lines {
		product, err := e.products.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			// Producto borrado durante la sesión: imposible descontar stock.
			shortages = append(shortages, domain.StockShortage{
				ProductID: line.ProductID,
				Name:      line.Name,
				Requested: line.Quantity,
				Available: 0,
			})
			continue
		}
		if product.Stock-line.Quantity < 0 {
			shortages = append(shortages, domain.StockShortage{
				ProductID: product.ID,
				Name:      product.Name,
				Requested: line.Quantity,
				Available: product.Stock,
			})
			continue
		}
		reads = append(reads, stockRead{line: line, expected: product.Stock})
	}
	if len(shortages) > 0 {
		return nil, &domain.InsufficientStockError{Shortages: shortages}
	}

	// Commit. La venta se escribe primero; ver el comentario del tipo Engine.
	sale := e.buildSale(in, lines, totals)
	if err := e.sales.Create(sale); err != nil {
		return nil, &domain.StorageError{Stage: domain.StageSaleWrite, Err: err}
	}

	var failures []*domain.StorageError
	if in.PaymentMethod == entity.PaymentCredit {
		if err := e.customers.UpdateBalance(in.CustomerID, newBalance); err != nil {
			failures = append(failures, &domain.StorageError{Stage: domain.StageBalanceWrite, Err: err})
		}
	}

	// Las líneas se procesan de forma independiente: si una falla, las demás
	// se intentan igual y todos los fallos se agregan en un solo error.
	for _, r := range reads {
		err := e.products.UpdateStock(r.line.ProductID, r.expected, r.expected-r.line.Quantity)
		if err != nil {
			failures = append(failures, &domain.StorageError{
				Stage:     domain.StageStockWrite,
				ProductID: r.line.ProductID,
				Err:       err,
			})
		}
	}

	if len(failures) > 0 {
		return nil, &domain.CommitError{SaleID: sale.ID, Failures: failures}
	}

	in.Cart.Clear()
	return sale, nil
}

// buildSale construye el registro inmutable de venta: snapshot de líneas,
// totales ya redondeados, id nuevo y timestamp del commit.
func (e *Engine) buildSale(in CheckoutInput, lines []CartLine, totals Totals) *entity.Sale {
	items := make([]entity.SaleItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, entity.SaleItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		Timestamp:     time.Now().UTC(),
		Items:         items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: in.PaymentMethod,
		UserID:        in.Session.UserID,
	}
	if in.PaymentMethod == entity.PaymentCredit {
		sale.CustomerID = in.CustomerID
	}
	return sale
}
