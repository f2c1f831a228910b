package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is an optional purchaser carrying a loyalty balance.
type Customer struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Address       string
	LoyaltyPoints int64
	CreatedAt     time.Time
}

// LoyaltyRates configures point accrual and redemption.
type LoyaltyRates struct {
	// EarnRate is points earned per currency unit of the final total.
	EarnRate decimal.Decimal
	// RedeemValue is currency value of a single point.
	RedeemValue decimal.Decimal
}
