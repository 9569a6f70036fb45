package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, phone, email, address, credit_limit, current_balance, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address,
		&c.CreditLimit, &c.CurrentBalance, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Phone, customer.Email, customer.Address,
		customer.CreditLimit, customer.CurrentBalance, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Retorna (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List lista clientes ordenados por nombre con paginación. limit <= 0 = sin límite.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name LIMIT $1 OFFSET $2`
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.q.Query(context.Background(), query, lim, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return collectCustomers(rows)
}

// Search busca por nombre, teléfono o email.
func (r *CustomerRepo) Search(query string) ([]*entity.Customer, error) {
	sql := `
		SELECT ` + customerColumns + ` FROM customers
		WHERE name ILIKE '%' || $1 || '%'
		   OR phone LIKE '%' || $1 || '%'
		   OR email ILIKE '%' || $1 || '%'
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), sql, query)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return collectCustomers(rows)
}

// Update actualiza los datos del cliente. No toca current_balance: el balance
// se muta solo vía UpdateBalance.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, phone = $3, email = $4, address = $5, credit_limit = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Phone, customer.Email, customer.Address,
		customer.CreditLimit, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateBalance escribe el nuevo balance redondeado a 2 decimales.
func (r *CustomerRepo) UpdateBalance(id string, newBalance decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE customers SET current_balance = $2, updated_at = now() WHERE id = $1`,
		id, newBalance.Round(2),
	)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el cliente por ID. Idempotente.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func collectCustomers(rows pgx.Rows) ([]*entity.Customer, error) {
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
