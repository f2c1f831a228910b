package model

import "github.com/shopspring/decimal"

// SettleItem is one cart line offered for settlement.
type SettleItem struct {
	VariantID     string
	Quantity      int
	UnitPrice     decimal.Decimal
	UnitCostPrice decimal.Decimal
	Description   string
}

// PaymentInput is a tender offered at checkout.
type PaymentInput struct {
	Amount decimal.Decimal
	Method PaymentMethod
	// Received is cash handed over by the customer; zero means Amount.
	Received decimal.Decimal
}

// Discount is the discount applied to the whole sale.
type Discount struct {
	Kind  DiscountKind
	Value decimal.Decimal
}

// SettleRequest is an immutable snapshot of a sale to commit.
type SettleRequest struct {
	StaffID               string
	LocationID            string
	CustomerID            *string
	Items                 []SettleItem
	Payments              []PaymentInput
	ShippingFee           decimal.Decimal
	Discount              Discount
	LoyaltyPointsToRedeem int64
	RequestedStatus       OrderStatus
}

// Quote holds the amounts derived from a SettleRequest.
type Quote struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	LoyaltyValue   decimal.Decimal
	PointsRedeemed int64
	PointsEarned   int64
	ShippingFee    decimal.Decimal
	Total          decimal.Decimal
	Change         decimal.Decimal
}

// SettleResult is returned after a successful settlement.
type SettleResult struct {
	Order  *Order
	Change decimal.Decimal
}
