package postgres

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NUMERIC columns are selected as ::text and parsed here so money never passes through float64.
func parseNumeric(dst *decimal.Decimal, raw string) error {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("parse numeric %q: %w", raw, err)
	}
	*dst = d
	return nil
}

type numericField struct {
	dst *decimal.Decimal
	raw string
}

func parseNumerics(fields ...numericField) error {
	for _, f := range fields {
		if err := parseNumeric(f.dst, f.raw); err != nil {
			return err
		}
	}
	return nil
}
