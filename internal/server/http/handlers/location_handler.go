package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gopos/internal/server/http/dto"
)

// LocationHandler lists stock locations.
type LocationHandler struct {
	facade LocationFacade
}

// NewLocationHandler constructs LocationHandler.
func NewLocationHandler(facade LocationFacade) *LocationHandler {
	return &LocationHandler{facade: facade}
}

// List handles GET /api/locations.
func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.facade.Locations(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		resp = append(resp, dto.LocationResponse{ID: l.ID, Name: l.Name})
	}
	c.JSON(http.StatusOK, resp)
}
