package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, price, cost, stock, category, barcode, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Cost, &p.Stock,
		&p.Category, &p.Barcode, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.Cost,
		product.Stock, product.Category, product.Barcode, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Retorna (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// List lista productos ordenados por nombre con paginación. limit <= 0 = sin límite.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name LIMIT $1 OFFSET $2`
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.q.Query(context.Background(), query, lim, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

// Search busca por nombre, descripción o código de barras (como el buscador del POS).
func (r *ProductRepo) Search(query string) ([]*entity.Product, error) {
	sql := `
		SELECT ` + productColumns + ` FROM products
		WHERE name ILIKE '%' || $1 || '%'
		   OR description ILIKE '%' || $1 || '%'
		   OR barcode LIKE '%' || $1 || '%'
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), sql, query)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return collectProducts(rows)
}

// ListLowStock productos con stock en o por debajo del umbral, los más bajos primero.
func (r *ProductRepo) ListLowStock(threshold int64) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock <= $1 ORDER BY stock`
	rows, err := r.q.Query(context.Background(), query, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return collectProducts(rows)
}

// Update actualiza los datos del producto. No toca stock: el stock se muta solo vía UpdateStock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, cost = $5, category = $6, barcode = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.Cost,
		product.Category, product.Barcode, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock actualización condicional del stock: escribe newStock solo si el
// stock actual sigue siendo expected. Cero filas afectadas = el stock cambió
// bajo nuestros pies (o el producto ya no existe) y se retorna ErrConflict o
// ErrNotFound según el caso.
func (r *ProductRepo) UpdateStock(id string, expected, newStock int64) error {
	if newStock < 0 {
		return domain.ErrInvalidInput
	}
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $3, updated_at = now() WHERE id = $1 AND stock = $2`,
		id, expected, newStock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		exists, err := r.GetByID(id)
		if err != nil {
			return err
		}
		if exists == nil {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	return nil
}

// Delete elimina un producto por ID. Idempotente: no falla si no existe.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
