package repository

import (
	"context"

	"github.com/polkiloo/gopos/internal/domain/model"
)

// ReportRepository aggregates the order ledger. Cancelled orders never count.
type ReportRepository interface {
	OrderTotals(ctx context.Context, period model.ReportPeriod) (*model.OrderTotals, error)
	LineSales(ctx context.Context, period model.ReportPeriod) (*model.LineSales, error)
	DailySales(ctx context.Context, period model.ReportPeriod) ([]model.DailySales, error)
	TopProducts(ctx context.Context, period model.ReportPeriod, limit int) ([]model.ProductSales, error)
}
