package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/gopos/internal/cart"
	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/server/http/dto"
	"github.com/polkiloo/gopos/internal/server/http/middleware"
)

// CurrentStaffID extracts authenticated staff identifier from context.
func CurrentStaffID(c *gin.Context) string {
	return c.GetString(middleware.StaffIDContextKey)
}

func writeError(c *gin.Context, err error) {
	var validation *domainErrors.ValidationError
	var stock *domainErrors.InsufficientStockError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validation.Error(), Field: validation.Field})
	case errors.As(err, &stock):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: stock.Error(), VariantID: stock.VariantID})
	case errors.Is(err, domainErrors.ErrValidation), errors.Is(err, domainErrors.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrInsufficientStock), errors.Is(err, domainErrors.ErrOutOfStock):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrUnauthenticated), errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrSKUExhausted):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

func toSettleRequest(staffID string, req dto.CheckoutRequest) model.SettleRequest {
	out := model.SettleRequest{
		StaffID:               staffID,
		LocationID:            req.LocationID,
		CustomerID:            req.CustomerID,
		ShippingFee:           req.ShippingFee.Decimal(),
		Discount:              model.Discount{Kind: model.DiscountNone, Value: decimal.Zero},
		LoyaltyPointsToRedeem: req.LoyaltyPointsToRedeem,
		RequestedStatus:       model.OrderStatus(req.RequestedStatus),
	}
	if req.Discount != nil && req.Discount.Kind != "" {
		out.Discount = model.Discount{Kind: model.DiscountKind(req.Discount.Kind), Value: req.Discount.Value.Decimal()}
	}
	for _, item := range req.Items {
		out.Items = append(out.Items, model.SettleItem{
			VariantID:     item.VariantID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice.Decimal(),
			UnitCostPrice: item.UnitCostPrice.Decimal(),
			Description:   item.Description,
		})
	}
	for _, p := range req.Payments {
		out.Payments = append(out.Payments, model.PaymentInput{
			Amount:   p.Amount.Decimal(),
			Method:   model.PaymentMethod(p.Method),
			Received: p.Received.Decimal(),
		})
	}
	return out
}

func toOrderResponse(o *model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.Number,
		CustomerID:     o.CustomerID,
		StaffID:        o.StaffID,
		LocationID:     o.LocationID,
		Subtotal:       dto.NewAmount(o.Subtotal),
		ShippingFee:    dto.NewAmount(o.ShippingFee),
		DiscountKind:   string(o.DiscountKind),
		DiscountValue:  dto.NewAmount(o.DiscountValue),
		DiscountAmount: dto.NewAmount(o.DiscountAmount),
		LoyaltyValue:   dto.NewAmount(o.LoyaltyValue),
		PointsRedeemed: o.PointsRedeemed,
		PointsEarned:   o.PointsEarned,
		TotalAmount:    dto.NewAmount(o.TotalAmount),
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			ID:            item.ID,
			VariantID:     item.VariantID,
			Quantity:      item.Quantity,
			UnitPrice:     dto.NewAmount(item.UnitPrice),
			UnitCostPrice: dto.NewAmount(item.UnitCostPrice),
			Description:   item.Description,
			Status:        string(item.Status),
		})
	}
	for _, p := range o.Payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{
			ID:     p.ID,
			Amount: dto.NewAmount(p.Amount),
			Method: string(p.Method),
		})
	}
	return resp
}

func toVariantResponse(v *model.ResolvedVariant) dto.VariantResponse {
	return dto.VariantResponse{
		VariantID:     v.VariantID,
		SKU:           v.SKU,
		ProductName:   v.ProductName,
		VariantLabel:  v.VariantLabel,
		UnitPrice:     dto.NewAmount(v.UnitPrice),
		UnitCostPrice: dto.NewAmount(v.UnitCostPrice),
		TotalStock:    v.TotalStock,
	}
}

func toCartResponse(s cart.Snapshot) dto.CartResponse {
	resp := dto.CartResponse{Items: make([]dto.CartLineResponse, 0, len(s.Lines)), Subtotal: dto.NewAmount(s.Subtotal())}
	for _, l := range s.Lines {
		resp.Items = append(resp.Items, dto.CartLineResponse{
			VariantID:    l.VariantID,
			SKU:          l.SKU,
			ProductName:  l.ProductName,
			VariantLabel: l.VariantLabel,
			UnitPrice:    dto.NewAmount(l.UnitPrice),
			Quantity:     l.Quantity,
			LineTotal:    dto.NewAmount(l.LineTotal()),
		})
	}
	return resp
}
