package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the tender used for a payment.
type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "CASH"
	PaymentMethodCard          PaymentMethod = "CARD"
	PaymentMethodGiftCard      PaymentMethod = "GIFT_CARD"
	PaymentMethodMobilePayment PaymentMethod = "MOBILE_PAYMENT"
	// PaymentMethodBankTransfer is accepted on input only; the ledger stores it as MOBILE_PAYMENT.
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// Valid reports whether the method is accepted on input.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodGiftCard,
		PaymentMethodMobilePayment, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// Persisted returns the ledger representation of the method.
func (m PaymentMethod) Persisted() PaymentMethod {
	if m == PaymentMethodBankTransfer {
		return PaymentMethodMobilePayment
	}
	return m
}

// Payment is one tender applied to an order.
type Payment struct {
	ID        string
	OrderID   string
	Amount    decimal.Decimal
	Method    PaymentMethod
	CreatedAt time.Time
}
