package model

import "github.com/shopspring/decimal"

// InventoryLevel is the stock of one variant at one location.
type InventoryLevel struct {
	VariantID  string
	LocationID string
	Quantity   int
}

// ResolvedVariant is a sellable variant found by SKU, with stock summed across locations.
type ResolvedVariant struct {
	VariantID     string
	SKU           string
	ProductName   string
	VariantLabel  string
	UnitPrice     decimal.Decimal
	UnitCostPrice decimal.Decimal
	TotalStock    int
}
