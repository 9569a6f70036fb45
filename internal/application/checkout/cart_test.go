package checkout_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/grocery-pos/internal/application/checkout"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func producto(id, name, price string) *entity.Product {
	return &entity.Product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: 100,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests Cart — mutación de líneas
// ──────────────────────────────────────────────────────────────────────────────

// Agregar dos veces el mismo producto funde las líneas en una sola.
func TestCart_AddLine_FundeLineasDelMismoProducto(t *testing.T) {
	cart := checkout.NewCart()
	bananas := producto("p1", "Bananas", "0.59")

	cart.AddLine(bananas, 2)
	cart.AddLine(bananas, 1)

	lines := cart.Lines()
	require.Len(t, lines, 1, "mismo producto debe ser una sola línea")
	assert.Equal(t, int64(3), lines[0].Quantity)
}

// El precio de la línea es snapshot: subir el precio del catálogo después de
// agregar no cambia el carrito.
func TestCart_AddLine_PrecioEsSnapshot(t *testing.T) {
	cart := checkout.NewCart()
	bananas := producto("p1", "Bananas", "0.59")
	cart.AddLine(bananas, 1)

	bananas.Price = dec("9.99") // cambio de precio posterior

	lines := cart.Lines()
	assert.True(t, lines[0].UnitPrice.Equal(dec("0.59")),
		"la línea debe conservar el precio al momento de agregar")
}

func TestCart_SetQuantity_CeroEliminaLaLinea(t *testing.T) {
	cart := checkout.NewCart()
	cart.AddLine(producto("p1", "Bananas", "0.59"), 3)

	cart.SetQuantity("p1", 0)

	assert.True(t, cart.IsEmpty(), "cantidad 0 debe eliminar la línea")
}

func TestCart_RemoveLine_EsIdempotente(t *testing.T) {
	cart := checkout.NewCart()
	cart.AddLine(producto("p1", "Bananas", "0.59"), 1)

	cart.RemoveLine("p1")
	cart.RemoveLine("p1") // segunda vez no debe hacer nada

	assert.True(t, cart.IsEmpty())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Totals — aritmética decimal y redondeo
// ──────────────────────────────────────────────────────────────────────────────

// Carrito de referencia: 3 bananas a 0.59 + 1 manzana a 1.29 con impuesto 0.
// Con float64 esto da 3.0599999...; con decimal debe dar exactamente 3.06.
func TestCart_ComputeTotals_SumaExacta(t *testing.T) {
	cart := checkout.NewCart()
	cart.AddLine(producto("p1", "Bananas", "0.59"), 3)
	cart.AddLine(producto("p2", "Apples", "1.29"), 1)

	totals := cart.ComputeTotals(decimal.Zero)

	assert.True(t, totals.Subtotal.Equal(dec("3.06")), "subtotal debe ser exactamente 3.06, fue %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.Zero))
	assert.True(t, totals.Total.Equal(dec("3.06")))
}

func TestCart_ComputeTotals_ConImpuesto(t *testing.T) {
	cart := checkout.NewCart()
	cart.AddLine(producto("p1", "Coffee", "7.99"), 2)

	totals := cart.ComputeTotals(dec("0.10"))

	assert.True(t, totals.Subtotal.Equal(dec("15.98")))
	assert.True(t, totals.Tax.Equal(dec("1.60")), "impuesto 1.598 debe redondear a 1.60, fue %s", totals.Tax)
	assert.True(t, totals.Total.Equal(dec("17.58")), "total debe redondear una sola vez, fue %s", totals.Total)
}

// Vuelto del carrito de referencia pagando con 5.00: exactamente 1.94.
func TestCart_ComputeChange_Exacto(t *testing.T) {
	cart := checkout.NewCart()
	cart.AddLine(producto("p1", "Bananas", "0.59"), 3)
	cart.AddLine(producto("p2", "Apples", "1.29"), 1)

	change := cart.ComputeChange(dec("5.00"), decimal.Zero)

	assert.True(t, change.Equal(dec("1.94")), "vuelto debe ser exactamente 1.94, fue %s", change)
}

// Efectivo menor al total produce vuelto negativo (el motor lo rechaza).
func TestCart_ComputeChange_NegativoConEfectivoInsuficiente(t *testing.T) {
	cart := checkout.NewCart()
	cart.AddLine(producto("p1", "Bananas", "0.59"), 3)
	cart.AddLine(producto("p2", "Apples", "1.29"), 1)

	change := cart.ComputeChange(dec("3.00"), decimal.Zero)

	assert.True(t, change.IsNegative())
	assert.True(t, change.Equal(dec("-0.06")))
}
