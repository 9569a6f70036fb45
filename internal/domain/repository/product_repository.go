package repository

import "github.com/tu-usuario/grocery-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock es condicional (compare-and-swap sobre el stock leído): si el
// stock actual ya no es expected, retorna domain.ErrConflict para que una
// carrera lectura-modificación-escritura sea detectable en vez de perderse.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Search(query string) ([]*entity.Product, error)
	ListLowStock(threshold int64) ([]*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, expected, newStock int64) error
	Delete(id string) error
}
