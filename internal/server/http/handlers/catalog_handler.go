package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gopos/internal/server/http/dto"
)

// CatalogHandler serves SKU lookups.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Resolve handles GET /api/pos/variants/:sku.
func (h *CatalogHandler) Resolve(c *gin.Context) {
	variant, err := h.facade.ResolveSKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVariantResponse(variant))
}

// GenerateSKU handles POST /api/inventory/skus.
func (h *CatalogHandler) GenerateSKU(c *gin.Context) {
	sku, err := h.facade.GenerateSKU(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.SKUResponse{SKU: sku})
}
