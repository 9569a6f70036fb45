// Package checkout contiene el carrito y el motor de transacción de venta:
// la única pieza del sistema con efectos secundarios multi-paso y semántica
// explícita de fallo parcial.
package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
)

// CartLine línea no confirmada del carrito. UnitPrice es snapshot del precio
// al momento de agregar: cambios de precio posteriores no alteran el carrito.
type CartLine struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int64
}

// Cart lista mutable de líneas de una sesión de venta. Vive solo durante el
// checkout; nunca se persiste directamente. No valida stock: eso ocurre
// únicamente en el commit, contra el estado vivo del almacén.
type Cart struct {
	lines []CartLine
}

// NewCart crea un carrito vacío.
func NewCart() *Cart {
	return &Cart{}
}

// AddLine agrega quantity unidades del producto. Si ya existe una línea para
// ese producto incrementa su cantidad; si no, crea la línea con el precio
// actual del producto como snapshot.
func (c *Cart) AddLine(product *entity.Product, quantity int64) {
	if product == nil || quantity < 1 {
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
	})
}

// SetQuantity reemplaza la cantidad de la línea. quantity < 1 elimina la línea.
// No impone tope superior: el tope es el stock vivo, verificado en el commit.
func (c *Cart) SetQuantity(productID string, quantity int64) {
	if quantity < 1 {
		c.RemoveLine(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveLine elimina la línea del producto. Idempotente.
func (c *Cart) RemoveLine(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines devuelve una copia de las líneas actuales.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear vacía el carrito. El motor lo invoca tras un commit exitoso.
func (c *Cart) Clear() {
	c.lines = nil
}

// Totals montos derivados del carrito, redondeados a 2 decimales.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals deriva subtotal, impuesto y total. El redondeo a 2 decimales
// se aplica una sola vez sobre cada monto final, nunca por línea ni en
// conversiones intermedias (política única de redondeo).
func (c *Cart) ComputeTotals(taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}
	tax := subtotal.Mul(taxRate)
	total := subtotal.Add(tax)
	return Totals{
		Subtotal: subtotal.Round(2),
		Tax:      tax.Round(2),
		Total:    total.Round(2),
	}
}

// ComputeChange calcula el vuelto para pago en efectivo: tendered - total,
// redondeado a 2 decimales. Puede ser negativo; un vuelto negativo bloquea
// el commit (efectivo insuficiente).
func (c *Cart) ComputeChange(tendered, taxRate decimal.Decimal) decimal.Decimal {
	return tendered.Sub(c.ComputeTotals(taxRate).Total).Round(2)
}
