package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/domain/repository"
)

const (
	defaultReportWindow = 30 * 24 * time.Hour
	defaultTopProducts  = 10
	maxTopProducts      = 100
)

// ReportUseCase builds sales and margin reports over the order ledger.
type ReportUseCase struct {
	reports repository.ReportRepository
	now     func() time.Time
}

// NewReportUseCase constructs ReportUseCase.
func NewReportUseCase(reports repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reports: reports, now: time.Now}
}

// Sales summarises revenue and margin for the period. A zero To means now,
// a zero From means thirty days before To.
func (u *ReportUseCase) Sales(ctx context.Context, period model.ReportPeriod) (*model.SalesReport, error) {
	period, err := u.resolve(period)
	if err != nil {
		return nil, err
	}

	totals, err := u.reports.OrderTotals(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	lines, err := u.reports.LineSales(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	days, err := u.reports.DailySales(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}

	return &model.SalesReport{
		Period:        period,
		OrderCount:    totals.OrderCount,
		Revenue:       totals.Revenue,
		DiscountTotal: totals.DiscountTotal,
		ShippingTotal: totals.ShippingTotal,
		LoyaltyTotal:  totals.LoyaltyTotal,
		ItemsSold:     lines.ItemsSold,
		GrossSales:    lines.GrossSales,
		CostOfGoods:   lines.CostOfGoods,
		GrossMargin:   lines.GrossSales.Sub(lines.CostOfGoods),
		Days:          days,
	}, nil
}

// TopProducts ranks products by units sold. Non-positive limits select the default.
func (u *ReportUseCase) TopProducts(ctx context.Context, period model.ReportPeriod, limit int) ([]model.ProductSales, error) {
	period, err := u.resolve(period)
	if err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = defaultTopProducts
	case limit > maxTopProducts:
		limit = maxTopProducts
	}
	return u.reports.TopProducts(ctx, period, limit)
}

func (u *ReportUseCase) resolve(p model.ReportPeriod) (model.ReportPeriod, error) {
	if p.To.IsZero() {
		p.To = u.now()
	}
	if p.From.IsZero() {
		p.From = p.To.Add(-defaultReportWindow)
	}
	if !p.From.Before(p.To) {
		return model.ReportPeriod{}, domainErrors.NewValidationError("from", "must be before to")
	}
	return p, nil
}
