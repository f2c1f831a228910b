package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
)

// validateSettleRequest checks the request shape and returns the status the order will be stored with.
func validateSettleRequest(req model.SettleRequest) (model.OrderStatus, error) {
	if strings.TrimSpace(req.LocationID) == "" {
		return "", domainErrors.NewValidationError("locationId", "is required")
	}
	if len(req.Items) == 0 {
		return "", domainErrors.NewValidationError("items", "must not be empty")
	}
	for i, item := range req.Items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(item.VariantID) == "" {
			return "", domainErrors.NewValidationError(field+".variantId", "is required")
		}
		if item.Quantity < 1 {
			return "", domainErrors.NewValidationError(field+".quantity", "must be at least 1")
		}
		if item.UnitPrice.IsNegative() {
			return "", domainErrors.NewValidationError(field+".unitPrice", "must not be negative")
		}
		if item.UnitCostPrice.IsNegative() {
			return "", domainErrors.NewValidationError(field+".unitCostPrice", "must not be negative")
		}
	}

	if len(req.Payments) > 1 {
		return "", domainErrors.NewValidationError("payments", "at most one payment is supported")
	}
	for _, p := range req.Payments {
		if !p.Method.Valid() {
			return "", domainErrors.NewValidationError("payments.method", fmt.Sprintf("unknown method %q", p.Method))
		}
		if p.Amount.IsNegative() {
			return "", domainErrors.NewValidationError("payments.amount", "must not be negative")
		}
		if p.Received.IsNegative() {
			return "", domainErrors.NewValidationError("payments.received", "must not be negative")
		}
	}

	switch req.Discount.Kind {
	case "", model.DiscountNone, model.DiscountFlat:
	case model.DiscountPercent:
		if req.Discount.Value.GreaterThan(hundred) {
			return "", domainErrors.NewValidationError("discount.value", "percent must not exceed 100")
		}
	default:
		return "", domainErrors.NewValidationError("discount.kind", fmt.Sprintf("unknown kind %q", req.Discount.Kind))
	}
	if req.Discount.Value.IsNegative() {
		return "", domainErrors.NewValidationError("discount.value", "must not be negative")
	}

	if req.LoyaltyPointsToRedeem < 0 {
		return "", domainErrors.NewValidationError("loyaltyPointsToRedeem", "must not be negative")
	}
	if req.ShippingFee.IsNegative() {
		return "", domainErrors.NewValidationError("shippingFee", "must not be negative")
	}

	switch req.RequestedStatus {
	case "", model.OrderStatusCompleted:
		return model.OrderStatusCompleted, nil
	case model.OrderStatusPending:
		if len(req.Payments) > 0 {
			return "", domainErrors.NewValidationError("payments", "must be empty for a pending order")
		}
		return model.OrderStatusPending, nil
	default:
		return "", domainErrors.NewValidationError("requestedStatus", "must be PENDING or COMPLETED")
	}
}
