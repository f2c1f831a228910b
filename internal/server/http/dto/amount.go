package dto

import "github.com/shopspring/decimal"

// Amount is a money value rendered as a JSON number with two decimals.
type Amount decimal.Decimal

// NewAmount converts a decimal to Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount(d)
}

// Decimal returns the underlying value.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.Decimal(a)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).StringFixed(2)), nil
}

// UnmarshalJSON accepts both numbers and numeric strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = Amount(d)
	return nil
}
