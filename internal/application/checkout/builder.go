package checkout

import (
	"fmt"

	"github.com/tu-usuario/grocery-pos/internal/domain"
)

// LineRequest par producto/cantidad para armar un carrito desde la API.
type LineRequest struct {
	ProductID string
	Quantity  int64
}

// BuildCart arma un carrito desde pares producto/cantidad, tomando el
// snapshot de precio del catálogo actual. Un producto inexistente aborta
// con ErrNotFound envuelto con el ID ofensor.
func (e *Engine) BuildCart(items []LineRequest) (*Cart, error) {
	cart := NewCart()
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		product, err := e.products.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
		}
		cart.AddLine(product, it.Quantity)
	}
	return cart, nil
}
