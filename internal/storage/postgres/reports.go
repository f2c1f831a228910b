package postgres

import (
	"context"
	"fmt"

	"github.com/polkiloo/gopos/internal/domain/model"
)

const reportOrderFilter = `o.status <> 'CANCELLED' AND o.created_at >= $1 AND o.created_at < $2`

func (r *reportRepository) OrderTotals(ctx context.Context, period model.ReportPeriod) (*model.OrderTotals, error) {
	const query = `SELECT COUNT(*),
                          COALESCE(SUM(o.total_amount), 0)::text,
                          COALESCE(SUM(o.discount_amount), 0)::text,
                          COALESCE(SUM(o.shipping_fee), 0)::text,
                          COALESCE(SUM(o.loyalty_value), 0)::text
                   FROM orders o
                   WHERE ` + reportOrderFilter
	var (
		totals                               model.OrderTotals
		revenue, discount, shipping, loyalty string
	)
	err := r.storage.pool.QueryRow(ctx, query, period.From, period.To).
		Scan(&totals.OrderCount, &revenue, &discount, &shipping, &loyalty)
	if err != nil {
		return nil, fmt.Errorf("order totals: %w", err)
	}
	err = parseNumerics(
		numericField{&totals.Revenue, revenue},
		numericField{&totals.DiscountTotal, discount},
		numericField{&totals.ShippingTotal, shipping},
		numericField{&totals.LoyaltyTotal, loyalty},
	)
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *reportRepository) LineSales(ctx context.Context, period model.ReportPeriod) (*model.LineSales, error) {
	const query = `SELECT COALESCE(SUM(li.quantity), 0),
                          COALESCE(SUM(li.unit_price * li.quantity), 0)::text,
                          COALESCE(SUM(li.unit_cost_price * li.quantity), 0)::text
                   FROM order_line_items li
                   JOIN orders o ON o.id = li.order_id
                   WHERE ` + reportOrderFilter
	var (
		sales       model.LineSales
		gross, cost string
	)
	if err := r.storage.pool.QueryRow(ctx, query, period.From, period.To).Scan(&sales.ItemsSold, &gross, &cost); err != nil {
		return nil, fmt.Errorf("line sales: %w", err)
	}
	if err := parseNumerics(numericField{&sales.GrossSales, gross}, numericField{&sales.CostOfGoods, cost}); err != nil {
		return nil, err
	}
	return &sales, nil
}

func (r *reportRepository) DailySales(ctx context.Context, period model.ReportPeriod) ([]model.DailySales, error) {
	const query = `SELECT date_trunc('day', o.created_at) AS day, COUNT(*), SUM(o.total_amount)::text
                   FROM orders o
                   WHERE ` + reportOrderFilter + `
                   GROUP BY day
                   ORDER BY day`
	rows, err := r.storage.pool.Query(ctx, query, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	defer rows.Close()

	var result []model.DailySales
	for rows.Next() {
		var (
			d       model.DailySales
			revenue string
		)
		if err := rows.Scan(&d.Day, &d.OrderCount, &revenue); err != nil {
			return nil, err
		}
		if err := parseNumeric(&d.Revenue, revenue); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *reportRepository) TopProducts(ctx context.Context, period model.ReportPeriod, limit int) ([]model.ProductSales, error) {
	const query = `SELECT p.name, SUM(li.quantity), SUM(li.unit_price * li.quantity)::text
                   FROM order_line_items li
                   JOIN orders o ON o.id = li.order_id
                   JOIN product_variants v ON v.id = li.variant_id
                   JOIN products p ON p.id = v.product_id
                   WHERE ` + reportOrderFilter + `
                   GROUP BY p.name
                   ORDER BY SUM(li.quantity) DESC, p.name
                   LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, period.From, period.To, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var result []model.ProductSales
	for rows.Next() {
		var (
			p       model.ProductSales
			revenue string
		)
		if err := rows.Scan(&p.ProductName, &p.Quantity, &revenue); err != nil {
			return nil, err
		}
		if err := parseNumeric(&p.Revenue, revenue); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
