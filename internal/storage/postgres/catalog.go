package postgres

import (
	"context"
	"strings"

	"github.com/polkiloo/gopos/internal/domain/model"
)

func (r *catalogRepository) ResolveSKU(ctx context.Context, sku string) (*model.ResolvedVariant, error) {
	const query = `SELECT v.id, v.sku, p.name, v.size, v.color,
                          COALESCE(v.price, p.base_price)::text,
                          COALESCE(v.cost_price, 0)::text,
                          COALESCE((SELECT SUM(il.quantity) FROM inventory_levels il WHERE il.variant_id = v.id), 0)
                   FROM product_variants v
                   JOIN products p ON p.id = v.product_id
                   WHERE v.sku = $1`
	var (
		rv               model.ResolvedVariant
		size, color      string
		price, costPrice string
		totalStock       int64
	)
	err := r.storage.pool.QueryRow(ctx, query, sku).
		Scan(&rv.VariantID, &rv.SKU, &rv.ProductName, &size, &color, &price, &costPrice, &totalStock)
	if err != nil {
		return nil, mapError(err)
	}
	if err := parseNumerics(numericField{&rv.UnitPrice, price}, numericField{&rv.UnitCostPrice, costPrice}); err != nil {
		return nil, err
	}
	rv.VariantLabel = variantLabel(size, color)
	rv.TotalStock = int(totalStock)
	return &rv, nil
}

func (r *catalogRepository) SKUExists(ctx context.Context, sku string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM product_variants WHERE sku=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, sku).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func variantLabel(size, color string) string {
	var parts []string
	for _, p := range []string{size, color} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " / ")
}

func (r *settingsRepository) LoyaltyRates(ctx context.Context) (*model.LoyaltyRates, error) {
	const query = `SELECT loyalty_earn_rate::text, loyalty_redeem_value::text FROM store_settings WHERE id=1`
	var earn, redeem string
	if err := r.storage.pool.QueryRow(ctx, query).Scan(&earn, &redeem); err != nil {
		return nil, mapError(err)
	}
	var rates model.LoyaltyRates
	if err := parseNumerics(numericField{&rates.EarnRate, earn}, numericField{&rates.RedeemValue, redeem}); err != nil {
		return nil, err
	}
	return &rates, nil
}
