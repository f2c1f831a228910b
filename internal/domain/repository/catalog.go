package repository

import (
	"context"

	"github.com/polkiloo/gopos/internal/domain/model"
)

// CatalogRepository exposes the lookups needed to assemble a cart.
type CatalogRepository interface {
	ResolveSKU(ctx context.Context, sku string) (*model.ResolvedVariant, error)
	SKUExists(ctx context.Context, sku string) (bool, error)
}

// SettingsRepository reads store-wide configuration.
type SettingsRepository interface {
	// LoyaltyRates returns ErrNotFound when the store has no explicit rates.
	LoyaltyRates(ctx context.Context) (*model.LoyaltyRates, error)
}
