package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/gopos/internal/domain/model"
)

const orderColumns = `id, order_number, customer_id, staff_id, location_id,
        subtotal::text, shipping_fee::text, discount_kind, discount_value::text,
        discount_amount::text, loyalty_value::text, points_redeemed, points_earned,
        total_amount::text, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o                                                 model.Order
		subtotal, shipping, discountValue, discountAmount string
		loyaltyValue, total                               string
	)
	err := row.Scan(&o.ID, &o.Number, &o.CustomerID, &o.StaffID, &o.LocationID,
		&subtotal, &shipping, &o.DiscountKind, &discountValue,
		&discountAmount, &loyaltyValue, &o.PointsRedeemed, &o.PointsEarned,
		&total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	err = parseNumerics(
		numericField{&o.Subtotal, subtotal},
		numericField{&o.ShippingFee, shipping},
		numericField{&o.DiscountValue, discountValue},
		numericField{&o.DiscountAmount, discountAmount},
		numericField{&o.LoyaltyValue, loyaltyValue},
		numericField{&o.TotalAmount, total},
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	if order.Items, err = r.lineItems(ctx, id); err != nil {
		return nil, err
	}
	if order.Payments, err = r.payments(ctx, id); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, order_number DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	query := `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, status, id))
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func (r *orderRepository) lineItems(ctx context.Context, orderID string) ([]model.LineItem, error) {
	const query = `SELECT id, order_id, variant_id, quantity, unit_price::text, unit_cost_price::text, description, status
                   FROM order_line_items WHERE order_id=$1 ORDER BY line_no, id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load line items: %w", err)
	}
	defer rows.Close()

	var items []model.LineItem
	for rows.Next() {
		var (
			item        model.LineItem
			price, cost string
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.VariantID, &item.Quantity, &price, &cost, &item.Description, &item.Status); err != nil {
			return nil, err
		}
		if err := parseNumerics(numericField{&item.UnitPrice, price}, numericField{&item.UnitCostPrice, cost}); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *orderRepository) payments(ctx context.Context, orderID string) ([]model.Payment, error) {
	const query = `SELECT id, order_id, amount::text, payment_method, created_at
                   FROM payment_transactions WHERE order_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var (
			p      model.Payment
			amount string
		)
		if err := rows.Scan(&p.ID, &p.OrderID, &amount, &p.Method, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := parseNumeric(&p.Amount, amount); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
