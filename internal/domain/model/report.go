package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod is a half-open [From, To) time range.
type ReportPeriod struct {
	From time.Time
	To   time.Time
}

// DailySales aggregates the non-cancelled orders of one calendar day.
type DailySales struct {
	Day        time.Time
	OrderCount int64
	Revenue    decimal.Decimal
}

// LineSales aggregates sold line items over a period.
type LineSales struct {
	ItemsSold   int64
	GrossSales  decimal.Decimal
	CostOfGoods decimal.Decimal
}

// SalesReport summarises a period. Cancelled orders are excluded.
type SalesReport struct {
	Period        ReportPeriod
	OrderCount    int64
	Revenue       decimal.Decimal
	DiscountTotal decimal.Decimal
	ShippingTotal decimal.Decimal
	LoyaltyTotal  decimal.Decimal
	ItemsSold     int64
	GrossSales    decimal.Decimal
	CostOfGoods   decimal.Decimal
	GrossMargin   decimal.Decimal
	Days          []DailySales
}

// OrderTotals are the order-level sums of a period.
type OrderTotals struct {
	OrderCount    int64
	Revenue       decimal.Decimal
	DiscountTotal decimal.Decimal
	ShippingTotal decimal.Decimal
	LoyaltyTotal  decimal.Decimal
}

// ProductSales ranks a product by units sold.
type ProductSales struct {
	ProductName string
	Quantity    int64
	Revenue     decimal.Decimal
}
