package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/polkiloo/gopos/internal/config"
	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/domain/repository"
)

const (
	skuPrefix = "SKU-"
	skuMin    = 100000
	skuMax    = 999999
)

// CatalogUseCase resolves scanned SKUs and allocates new ones.
type CatalogUseCase struct {
	catalog     repository.CatalogRepository
	maxAttempts int
	draw        func() int
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(catalog repository.CatalogRepository, cfg *config.Config) *CatalogUseCase {
	return &CatalogUseCase{
		catalog:     catalog,
		maxAttempts: cfg.SKUMaxAttempts,
		draw:        func() int { return skuMin + rand.IntN(skuMax-skuMin+1) },
	}
}

// Resolve returns the variant carrying sku with its stock summed over all locations.
func (u *CatalogUseCase) Resolve(ctx context.Context, sku string) (*model.ResolvedVariant, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domainErrors.NewValidationError("sku", "is required")
	}
	return u.catalog.ResolveSKU(ctx, sku)
}

// GenerateSKU draws random SKUs until one is unused.
func (u *CatalogUseCase) GenerateSKU(ctx context.Context) (string, error) {
	attempts := u.maxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		sku := fmt.Sprintf("%s%d", skuPrefix, u.draw())
		exists, err := u.catalog.SKUExists(ctx, sku)
		if err != nil {
			return "", fmt.Errorf("check sku %s: %w", sku, err)
		}
		if !exists {
			return sku, nil
		}
	}
	return "", domainErrors.ErrSKUExhausted
}
