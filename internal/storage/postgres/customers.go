package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/gopos/internal/domain/model"
)

const customerColumns = `id, name, email, phone, address, loyalty_points, created_at`

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.LoyaltyPoints, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, search string) ([]model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	var args []any
	if search = strings.TrimSpace(search); search != "" {
		query += ` WHERE name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name, id`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	c, err := scanCustomer(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *customerRepository) Create(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	query := `INSERT INTO customers (id, name, email, phone, address)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING ` + customerColumns
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	c, err := scanCustomer(r.storage.pool.QueryRow(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.Address))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	query := `UPDATE customers SET name=$1, email=$2, phone=$3, address=$4
              WHERE id=$5
              RETURNING ` + customerColumns
	c, err := scanCustomer(r.storage.pool.QueryRow(ctx, query,
		customer.Name, customer.Email, customer.Phone, customer.Address, customer.ID))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *locationRepository) List(ctx context.Context) ([]model.Location, error) {
	const query = `SELECT id, name, created_at FROM store_locations ORDER BY name, id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
