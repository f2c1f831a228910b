package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/gopos/internal/domain/model"
)

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// QuoteSale computes the totals of a validated request. Loyalty points only count when a customer is attached.
func QuoteSale(req model.SettleRequest, rates model.LoyaltyRates) model.Quote {
	var q model.Quote

	for _, item := range req.Items {
		q.Subtotal = q.Subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	q.Subtotal = roundMoney(q.Subtotal)

	switch req.Discount.Kind {
	case model.DiscountFlat:
		q.DiscountAmount = roundMoney(req.Discount.Value)
	case model.DiscountPercent:
		q.DiscountAmount = roundMoney(q.Subtotal.Mul(req.Discount.Value).Div(hundred))
	}

	if req.CustomerID != nil && req.LoyaltyPointsToRedeem > 0 && rates.RedeemValue.IsPositive() {
		// Points come from the unrounded value; only the currency amount is rounded.
		value := decimal.Min(q.Subtotal, decimal.NewFromInt(req.LoyaltyPointsToRedeem).Mul(rates.RedeemValue))
		q.PointsRedeemed = value.Div(rates.RedeemValue).Floor().IntPart()
		q.LoyaltyValue = roundMoney(value)
	}

	q.ShippingFee = roundMoney(req.ShippingFee)
	q.Total = roundMoney(decimal.Max(decimal.Zero,
		q.Subtotal.Sub(q.DiscountAmount).Sub(q.LoyaltyValue).Add(q.ShippingFee)))

	if req.CustomerID != nil && rates.EarnRate.IsPositive() {
		q.PointsEarned = q.Total.Mul(rates.EarnRate).Floor().IntPart()
	}

	if len(req.Payments) > 0 {
		q.Change = changeFor(req.Payments[0], q.Total)
	}
	return q
}

// paymentAmount resolves a zero amount to the order total.
func paymentAmount(p model.PaymentInput, total decimal.Decimal) decimal.Decimal {
	if p.Amount.IsZero() {
		return total
	}
	return roundMoney(p.Amount)
}

func changeFor(p model.PaymentInput, total decimal.Decimal) decimal.Decimal {
	if p.Method != model.PaymentMethodCash {
		return decimal.Zero
	}
	received := p.Received
	if received.IsZero() {
		received = paymentAmount(p, total)
	}
	return roundMoney(decimal.Max(decimal.Zero, received.Sub(total)))
}
