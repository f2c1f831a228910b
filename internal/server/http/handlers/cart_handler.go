package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gopos/internal/server/http/dto"
)

// CartHandler exposes the staff member's cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/pos/cart.
func (h *CartHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, toCartResponse(h.facade.Cart(CurrentStaffID(c))))
}

// AddItem handles POST /api/pos/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	snapshot, err := h.facade.AddToCart(c.Request.Context(), CurrentStaffID(c), req.SKU, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(snapshot))
}

// UpdateItem handles PATCH /api/pos/cart/items/:sku.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	snapshot, err := h.facade.UpdateCartItem(CurrentStaffID(c), c.Param("sku"), req.Delta)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(snapshot))
}

// RemoveItem handles DELETE /api/pos/cart/items/:sku.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	snapshot, err := h.facade.RemoveFromCart(CurrentStaffID(c), c.Param("sku"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(snapshot))
}

// Clear handles DELETE /api/pos/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	h.facade.ClearCart(CurrentStaffID(c))
	c.Status(http.StatusNoContent)
}

// Checkout handles POST /api/pos/cart/checkout. Items come from the cart.
func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	req.Items = nil

	result, err := h.facade.CheckoutCart(c.Request.Context(), toSettleRequest(CurrentStaffID(c), req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CheckoutResponse{Order: toOrderResponse(result.Order), Change: dto.NewAmount(result.Change)})
}
