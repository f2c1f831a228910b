package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gopos/internal/server/http/dto"
)

// CheckoutHandler settles explicit sale requests.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Settle handles POST /api/pos/checkout.
func (h *CheckoutHandler) Settle(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	result, err := h.facade.Settle(c.Request.Context(), toSettleRequest(CurrentStaffID(c), req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CheckoutResponse{Order: toOrderResponse(result.Order), Change: dto.NewAmount(result.Change)})
}
