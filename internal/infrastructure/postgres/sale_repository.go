package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL. Las ventas son
// inmutables: la cabecera va a sales y los renglones (snapshots de producto)
// a sale_items; no hay UPDATE ni DELETE.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta con sus renglones.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, sold_at, subtotal, tax, total, payment_method, customer_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)`,
		sale.ID, sale.Timestamp, sale.Subtotal, sale.Tax, sale.Total,
		sale.PaymentMethod, sale.CustomerID, sale.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for i, item := range sale.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (sale_id, position, product_id, name, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			sale.ID, i, item.ProductID, item.Name, item.UnitPrice, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus renglones. Retorna (nil, nil) si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	var s entity.Sale
	err := r.q.QueryRow(ctx, `
		SELECT id, sold_at, subtotal, tax, total, payment_method, COALESCE(customer_id, ''), user_id
		FROM sales WHERE id = $1`, id).Scan(
		&s.ID, &s.Timestamp, &s.Subtotal, &s.Tax, &s.Total, &s.PaymentMethod, &s.CustomerID, &s.UserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// List lista ventas que cumplen el filtro, más recientes primero, con renglones.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	ctx := context.Background()
	var conds []string
	var args []any
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conds = append(conds, "user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.PaymentMethod != "" {
		args = append(args, filter.PaymentMethod)
		conds = append(conds, "payment_method = $"+strconv.Itoa(len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conds = append(conds, "sold_at >= $"+strconv.Itoa(len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conds = append(conds, "sold_at <= $"+strconv.Itoa(len(args)))
	}
	query := `SELECT id, sold_at, subtotal, tax, total, payment_method, COALESCE(customer_id, ''), user_id FROM sales`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY sold_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Timestamp, &s.Subtotal, &s.Tax, &s.Total,
			&s.PaymentMethod, &s.CustomerID, &s.UserID); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		items, err := r.itemsFor(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return list, nil
}

func (r *SaleRepo) itemsFor(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, name, unit_price, quantity
		FROM sale_items WHERE sale_id = $1 ORDER BY position`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
