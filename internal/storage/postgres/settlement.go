package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/domain/repository"
)

const orderCounterName = "orders"

// settlementTx binds settlement writes to one pgx transaction.
type settlementTx struct {
	tx pgx.Tx
}

// WithinSettlement runs fn in a transaction, retrying the whole unit on serialization failures and deadlocks.
func (s *Storage) WithinSettlement(ctx context.Context, fn func(repository.SettlementTx) error) error {
	return s.withRetry(ctx, "settlement", func() error {
		return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
			return fn(&settlementTx{tx: tx})
		})
	})
}

func (t *settlementTx) LocationExists(ctx context.Context, locationID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM store_locations WHERE id=$1)`
	var exists bool
	if err := t.tx.QueryRow(ctx, query, locationID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (t *settlementTx) LockCustomerPoints(ctx context.Context, customerID string) (int64, error) {
	const query = `SELECT loyalty_points FROM customers WHERE id=$1 FOR UPDATE`
	var points int64
	if err := t.tx.QueryRow(ctx, query, customerID).Scan(&points); err != nil {
		return 0, mapError(err)
	}
	return points, nil
}

// NextOrderSequence seeds the counter from the existing order count on first use.
func (t *settlementTx) NextOrderSequence(ctx context.Context) (int64, error) {
	const query = `INSERT INTO order_counters (name, value)
                   VALUES ($1, (SELECT COUNT(*) + 1 FROM orders))
                   ON CONFLICT (name) DO UPDATE SET value = order_counters.value + 1
                   RETURNING value`
	var value int64
	if err := t.tx.QueryRow(ctx, query, orderCounterName).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

func (t *settlementTx) InsertOrder(ctx context.Context, order *model.Order) error {
	const query = `INSERT INTO orders (id, order_number, customer_id, staff_id, location_id,
                       subtotal, shipping_fee, discount_kind, discount_value, discount_amount,
                       loyalty_value, points_redeemed, points_earned, total_amount, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
                   RETURNING created_at, updated_at`
	err := t.tx.QueryRow(ctx, query,
		order.ID, order.Number, order.CustomerID, order.StaffID, order.LocationID,
		order.Subtotal.String(), order.ShippingFee.String(), order.DiscountKind, order.DiscountValue.String(), order.DiscountAmount.String(),
		order.LoyaltyValue.String(), order.PointsRedeemed, order.PointsEarned, order.TotalAmount.String(), order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	return mapError(err)
}

func (t *settlementTx) InsertLineItems(ctx context.Context, items []model.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	const columns = 9
	values := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*columns)
	for i, item := range items {
		values = append(values, placeholders(i*columns, columns))
		args = append(args, item.ID, item.OrderID, i+1, item.VariantID, item.Quantity,
			item.UnitPrice.String(), item.UnitCostPrice.String(), item.Description, item.Status)
	}

	query := `INSERT INTO order_line_items (id, order_id, line_no, variant_id, quantity, unit_price, unit_cost_price, description, status) VALUES ` +
		strings.Join(values, ", ")
	if _, err := t.tx.Exec(ctx, query, args...); err != nil {
		return mapError(err)
	}
	return nil
}

func (t *settlementTx) InsertPayments(ctx context.Context, payments []model.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	const columns = 4
	values := make([]string, 0, len(payments))
	args := make([]any, 0, len(payments)*columns)
	for i, p := range payments {
		values = append(values, placeholders(i*columns, columns))
		args = append(args, p.ID, p.OrderID, p.Amount.String(), p.Method.Persisted())
	}

	query := `INSERT INTO payment_transactions (id, order_id, amount, payment_method) VALUES ` +
		strings.Join(values, ", ")
	if _, err := t.tx.Exec(ctx, query, args...); err != nil {
		return mapError(err)
	}
	return nil
}

func (t *settlementTx) DecrementStock(ctx context.Context, variantID, locationID string, quantity int) error {
	const query = `UPDATE inventory_levels
                   SET quantity = quantity - $1, updated_at = NOW()
                   WHERE variant_id = $2 AND location_id = $3 AND quantity >= $1`
	tag, err := t.tx.Exec(ctx, query, quantity, variantID, locationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &domainErrors.InsufficientStockError{VariantID: variantID}
	}
	return nil
}

func (t *settlementTx) SetCustomerPoints(ctx context.Context, customerID string, points int64) error {
	const query = `UPDATE customers SET loyalty_points=$1 WHERE id=$2`
	tag, err := t.tx.Exec(ctx, query, points, customerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (t *settlementTx) EnqueueEvent(ctx context.Context, event model.OutboxEvent) error {
	const query = `INSERT INTO outbox (event_id, event_type, event_key, payload) VALUES ($1, $2, $3, $4)`
	_, err := t.tx.Exec(ctx, query, event.EventID, event.Type, event.Key, string(event.Payload))
	return mapError(err)
}

func placeholders(offset, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", offset+i+1)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
