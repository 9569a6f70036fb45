package checkout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/grocery-pos/internal/application/checkout"
	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
	"github.com/tu-usuario/grocery-pos/internal/infrastructure/kvstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: almacén en memoria + repos con fallas inyectables
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	sales     repository.SaleRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := kvstore.Open("") // solo memoria
	require.NoError(t, err)
	return &fixture{
		products:  kvstore.NewProductRepository(store),
		customers: kvstore.NewCustomerRepository(store),
		sales:     kvstore.NewSaleRepository(store),
	}
}

func (f *fixture) engine(taxRate decimal.Decimal) *checkout.Engine {
	return checkout.NewEngine(f.products, f.customers, f.sales, taxRate)
}

func (f *fixture) seedProduct(t *testing.T, id, name, price string, stock int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: id, Name: name,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.products.Create(p))
	return p
}

func (f *fixture) seedCustomer(t *testing.T, id, name, limit, balance string) *entity.Customer {
	t.Helper()
	now := time.Now()
	c := &entity.Customer{
		ID: id, Name: name,
		CreditLimit:    decimal.RequireFromString(limit),
		CurrentBalance: decimal.RequireFromString(balance),
		CreatedAt:      now, UpdatedAt: now,
	}
	require.NoError(t, f.customers.Create(c))
	return c
}

func cartWith(t *testing.T, f *fixture, items ...struct {
	id  string
	qty int64
}) *checkout.Cart {
	t.Helper()
	cart := checkout.NewCart()
	for _, it := range items {
		p, err := f.products.GetByID(it.id)
		require.NoError(t, err)
		require.NotNil(t, p)
		cart.AddLine(p, it.qty)
	}
	return cart
}

func item(id string, qty int64) struct {
	id  string
	qty int64
} {
	return struct {
		id  string
		qty int64
	}{id, qty}
}

var session = checkout.Session{UserID: "user-1", Role: entity.RoleOwner}

// failingBalanceRepo envuelve CustomerRepository y falla UpdateBalance.
type failingBalanceRepo struct {
	repository.CustomerRepository
}

func (r *failingBalanceRepo) UpdateBalance(id string, newBalance decimal.Decimal) error {
	return errors.New("disco lleno")
}

// failingStockRepo envuelve ProductRepository y falla UpdateStock para un producto concreto.
type failingStockRepo struct {
	repository.ProductRepository
	failID string
}

func (r *failingStockRepo) UpdateStock(id string, expected, newStock int64) error {
	if id == r.failID {
		return errors.New("disco lleno")
	}
	return r.ProductRepository.UpdateStock(id, expected, newStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta en efectivo
// ──────────────────────────────────────────────────────────────────────────────

// Venta cash feliz: persiste la venta, descuenta stock por línea y vacía el carrito.
func TestCompleteSale_CashExitosa(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Bananas", "0.59", 50)
	f.seedProduct(t, "p2", "Apples", "1.29", 40)
	cart := cartWith(t, f, item("p1", 3), item("p2", 1))

	sale, err := f.engine(decimal.Zero).CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:          cart,
		PaymentMethod: entity.PaymentCash,
		Tendered:      decimal.RequireFromString("5.00"),
		Session:       session,
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.True(t, sale.Subtotal.Equal(decimal.RequireFromString("3.06")))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("3.06")))
	assert.Equal(t, entity.PaymentCash, sale.PaymentMethod)
	assert.Empty(t, sale.CustomerID, "venta cash no referencia cliente")
	assert.Equal(t, "user-1", sale.UserID)
	assert.Len(t, sale.Items, 2)

	// Stock descontado por línea
	p1, _ := f.products.GetByID("p1")
	p2, _ := f.products.GetByID("p2")
	assert.Equal(t, int64(47), p1.Stock)
	assert.Equal(t, int64(39), p2.Stock)

	// Venta persistida y carrito vacío
	persisted, err := f.sales.GetByID(sale.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.True(t, cart.IsEmpty(), "el commit exitoso vacía el carrito")
}

// Efectivo insuficiente: error tipado con los montos, cero escrituras.
func TestCompleteSale_EfectivoInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Bananas", "0.59", 50)
	cart := cartWith(t, f, item("p1", 3))

	_, err := f.engine(decimal.Zero).CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:          cart,
		PaymentMethod: entity.PaymentCash,
		Tendered:      decimal.RequireFromString("1.00"),
		Session:       session,
	})

	var tenderErr *domain.InsufficientTenderError
	require.ErrorAs(t, err, &tenderErr)
	assert.True(t, tenderErr.Total.Equal(decimal.RequireFromString("1.77")))
	assert.True(t, tenderErr.Shortfall().Equal(decimal.RequireFromString("0.77")))

	// Sin efectos secundarios
	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, int64(50), p1.Stock)
	sales, _ := f.sales.List(repository.SaleFilter{})
	assert.Empty(t, sales)
}

func TestCompleteSale_CarritoVacio(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine(decimal.Zero).CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:          checkout.NewCart(),
		PaymentMethod: entity.PaymentCash,
		Tendered:      decimal.RequireFromString("5.00"),
		Session:       session,
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCompleteSale_MetodoDePagoInvalido(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Bananas", "0.59", 50)
	cart := cartWith(t, f, item("p1", 1))

	_, err := f.engine(decimal.Zero).CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:          cart,
		PaymentMethod: "cheque",
		Session:       session,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta a crédito
// ──────────────────────────────────────────────────────────────────────────────

// Venta a crédito feliz: balance 320.25 + compra 6.49 = exactamente 326.74.
func TestCompleteSale_CreditoActualizaBalanceExacto(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Ground Beef", "6.49", 20)
	f.seedCustomer(t, "c1", "Mike Johnson", "1000.00", "320.25")
	cart := cartWith(t, f, item("p1", 1))

	sale, err := f.engine(decimal.Zero).CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:          cart,
		PaymentMethod: entity.PaymentCredit,
		CustomerID:    "c1",
		Session:       session,
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", sale.CustomerID)

	c1, _ := f.customers.GetByID("c1")
	assert.True(t, c1.CurrentBalance.Equal(decimal.RequireFromString("326.74")),
		"balance debe ser exactamente 326.74, fue %s", c1.CurrentBalance)
}

func TestCompleteSale_CreditoSinCliente(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Bananas", "0.59", 50)
	cart := cartWith(t, f, item("p1", 1))

	_, err := f.engine(decimal.Zero).CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:          cart,
		PaymentMethod: entity.PaymentCredit,
		Session:       session,
	})
	assert.ErrorIs(t, err, domain.ErrNoCustomerSelected)
}

// Exceso de cupo: balance 980 + compra 50 contra cupo 1000 → error tipado con
// los tres montos y cero escrituras.
func TestCompleteSale_CreditoExcedeCupo(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Premium Box", "50.00", 10)
	f.seedCustomer(t, "c1", "Mike Johnson", "1000.00", "980.00")
	cart := cartWith(t, f, item("p1", 1))

	_, err := f.engine(decimal.Zero).CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:          cart,
		PaymentMethod: entity.PaymentCredit,
		CustomerID:    "c1",
		Session:       session,
	})

	var limitErr *domain.CreditLimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.True(t, limitErr.CurrentBalance.Equal(decimal.RequireFromString("980.00")))
	assert.True(t, limitErr.CreditLimit.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, limitErr.AttemptedTotal.Equal(decimal.RequireFromString("50.00")))

	// Sin efectos secundarios: ni venta, ni balance, ni stock
	c1, _ := f.customers.GetByID("c1")
	assert.True(t, c1.CurrentBalance.Equal(decimal.RequireFromString("980.00")))
	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, int64(10), p1.Stock)
	sales, _ := f.sales.List(repository.SaleFilter{})
	assert.Empty(t, sales)
}

// El mismo exceso con autorización explícita pasa y deja el balance sobre el cupo.
func TestCompleteSale_CreditoExcedeCupoConAutorizacion(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Premium Box", "50.00", 10)
	f.seedCustomer(t, "c1", "Mike Johnson", "1000.00", "980.00")
	cart := cartWith(t, f, item("p1", 1))

	sale, err := f.engine(decimal.Zero).CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:           cart,
		PaymentMethod:  entity.PaymentCredit,
		CustomerID:     "c1",
		AllowOverLimit: true,
		Session:        session,
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	c1, _ := f.customers.GetByID("c1")
	assert.True(t, c1.CurrentBalance.Equal(decimal.RequireFromString("1030.00")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de stock
// ──────────────────────────────────────────────────────────────────────────────

// Stock insuficiente en varias líneas: el error junta TODAS las ofensoras y
// nada se escribe, ni siquiera las líneas que sí tenían stock.
func TestCompleteSale_StockInsuficienteJuntaTodasLasLineas(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Bananas", "0.59", 2)  // pide 5
	f.seedProduct(t, "p2", "Apples", "1.29", 50)  // suficiente
	f.seedProduct(t, "p3", "Coffee", "7.99", 0)   // pide 1
	cart := cartWith(t, f, item("p1", 5), item("p2", 1), item("p3", 1))

	_, err := f.engine(decimal.Zero).CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:          cart,
		PaymentMethod: entity.PaymentCash,
		Tendered:      decimal.RequireFromString("100.00"),
		Session:       session,
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortages, 2, "debe reportar las dos líneas ofensoras")
	assert.Equal(t, "p1", stockErr.Shortages[0].ProductID)
	assert.Equal(t, int64(5), stockErr.Shortages[0].Requested)
	assert.Equal(t, int64(2), stockErr.Shortages[0].Available)
	assert.Equal(t, "p3", stockErr.Shortages[1].ProductID)

	// La línea con stock suficiente tampoco se descontó
	p2, _ := f.products.GetByID("p2")
	assert.Equal(t, int64(50), p2.Stock)
	sales, _ := f.sales.List(repository.SaleFilter{})
	assert.Empty(t, sales)
}

// Producto eliminado del catálogo mientras estaba en el carrito: se reporta
// como faltante con disponible 0.
func TestCompleteSale_ProductoEliminadoDuranteLaSesion(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Bananas", "0.59", 50)
	cart := cartWith(t, f, item("p1", 2))
	require.NoError(t, f.products.Delete("p1"))

	_, err := f.engine(decimal.Zero).CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:          cart,
		PaymentMethod: entity.PaymentCash,
		Tendered:      decimal.RequireFromString("5.00"),
		Session:       session,
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortages, 1)
	assert.Equal(t, int64(0), stockErr.Shortages[0].Available)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallo parcial del commit
// ──────────────────────────────────────────────────────────────────────────────

// Si la escritura del balance falla DESPUÉS de persistir la venta, no hay
// rollback: la venta queda y el error identifica la etapa exacta.
func TestCompleteSale_FalloDeBalance_VentaQuedaPersistida(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Ground Beef", "6.49", 20)
	f.seedCustomer(t, "c1", "Mike Johnson", "1000.00", "320.25")
	cart := cartWith(t, f, item("p1", 1))

	engine := checkout.NewEngine(
		f.products,
		&failingBalanceRepo{CustomerRepository: f.customers},
		f.sales,
		decimal.Zero,
	)
	_, err := engine.CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:          cart,
		PaymentMethod: entity.PaymentCredit,
		CustomerID:    "c1",
		Session:       session,
	})

	var commitErr *domain.CommitError
	require.ErrorAs(t, err, &commitErr)
	require.Len(t, commitErr.Failures, 1)
	assert.Equal(t, domain.StageBalanceWrite, commitErr.Failures[0].Stage)

	// La venta quedó escrita (fuente de verdad para reconciliar)
	sale, errGet := f.sales.GetByID(commitErr.SaleID)
	require.NoError(t, errGet)
	require.NotNil(t, sale, "la venta debe quedar persistida aunque el balance falle")

	// El balance NO se movió
	c1, _ := f.customers.GetByID("c1")
	assert.True(t, c1.CurrentBalance.Equal(decimal.RequireFromString("320.25")))

	// El stock SÍ se descontó: las etapas posteriores se intentan igual
	p1, _ := f.products.GetByID("p1")
	assert.Equal(t, int64(19), p1.Stock)
}

// Fallo de stock en una línea: las demás líneas se intentan igual y el error
// agrega solo las que fallaron, con el producto ofensor.
func TestCompleteSale_FalloDeStockPorLinea_LasDemasSeEscriben(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Bananas", "0.59", 50)
	f.seedProduct(t, "p2", "Apples", "1.29", 40)
	cart := cartWith(t, f, item("p1", 3), item("p2", 1))

	engine := checkout.NewEngine(
		&failingStockRepo{ProductRepository: f.products, failID: "p1"},
		f.customers,
		f.sales,
		decimal.Zero,
	)
	_, err := engine.CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:          cart,
		PaymentMethod: entity.PaymentCash,
		Tendered:      decimal.RequireFromString("5.00"),
		Session:       session,
	})

	var commitErr *domain.CommitError
	require.ErrorAs(t, err, &commitErr)
	require.Len(t, commitErr.Failures, 1)
	assert.Equal(t, domain.StageStockWrite, commitErr.Failures[0].Stage)
	assert.Equal(t, "p1", commitErr.Failures[0].ProductID)

	// p1 no se descontó, p2 sí
	p1, _ := f.products.GetByID("p1")
	p2, _ := f.products.GetByID("p2")
	assert.Equal(t, int64(50), p1.Stock)
	assert.Equal(t, int64(39), p2.Stock)
}

// Carrera de stock: otro proceso descuenta entre la validación y la escritura.
// La escritura condicional la detecta y la reporta como fallo de etapa stock.
func TestCompleteSale_CarreraDeStock_SeDetectaComoConflicto(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Bananas", "0.59", 5)
	cart := cartWith(t, f, item("p1", 2))

	// Simular la carrera con un wrapper que muta el stock justo antes de escribir
	racing := &racingStockRepo{ProductRepository: f.products}
	engine := checkout.NewEngine(racing, f.customers, f.sales, decimal.Zero)

	_, err := engine.CompleteSale(context.Background(), checkout.CheckoutInput{
		Cart:          cart,
		PaymentMethod: entity.PaymentCash,
		Tendered:      decimal.RequireFromString("5.00"),
		Session:       session,
	})

	var commitErr *domain.CommitError
	require.ErrorAs(t, err, &commitErr)
	require.Len(t, commitErr.Failures, 1)
	assert.ErrorIs(t, commitErr.Failures[0], domain.ErrConflict,
		"la carrera debe aparecer como conflicto, no perderse en silencio")
}

// racingStockRepo descuenta una unidad por fuera justo antes de cada
// UpdateStock, invalidando el valor esperado.
type racingStockRepo struct {
	repository.ProductRepository
}

func (r *racingStockRepo) UpdateStock(id string, expected, newStock int64) error {
	p, err := r.ProductRepository.GetByID(id)
	if err != nil || p == nil {
		return err
	}
	// Mutación concurrente simulada
	if err := r.ProductRepository.UpdateStock(id, p.Stock, p.Stock-1); err != nil {
		return err
	}
	return r.ProductRepository.UpdateStock(id, expected, newStock)
}
