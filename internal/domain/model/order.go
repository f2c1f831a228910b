package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes sale lifecycle.
type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "PENDING"
	OrderStatusCompleted         OrderStatus = "COMPLETED"
	OrderStatusCancelled         OrderStatus = "CANCELLED"
	OrderStatusReturned          OrderStatus = "RETURNED"
	OrderStatusPartiallyReturned OrderStatus = "PARTIALLY_RETURNED"
)

// Valid reports whether status is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled,
		OrderStatusReturned, OrderStatusPartiallyReturned:
		return true
	}
	return false
}

// DiscountKind selects how a discount value is interpreted.
type DiscountKind string

const (
	DiscountNone    DiscountKind = "none"
	DiscountFlat    DiscountKind = "flat"
	DiscountPercent DiscountKind = "percent"
)

// LineItemStatus tracks a sold line.
type LineItemStatus string

const LineItemStatusSold LineItemStatus = "SOLD"

// Order describes a committed or pending sale.
type Order struct {
	ID             string
	Number         string
	CustomerID     *string
	StaffID        string
	LocationID     string
	Subtotal       decimal.Decimal
	ShippingFee    decimal.Decimal
	DiscountKind   DiscountKind
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal
	LoyaltyValue   decimal.Decimal
	PointsRedeemed int64
	PointsEarned   int64
	TotalAmount    decimal.Decimal
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items    []LineItem
	Payments []Payment
}

// LineItem is one variant sold within an order.
type LineItem struct {
	ID            string
	OrderID       string
	VariantID     string
	Quantity      int
	UnitPrice     decimal.Decimal
	UnitCostPrice decimal.Decimal
	Description   string
	Status        LineItemStatus
}

// LineTotal returns unit price multiplied by quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
