package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gopos/internal/server/http/dto"
	"github.com/polkiloo/gopos/internal/server/http/middleware"
)

// AuthHandler processes staff login and logout.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	token, err := h.facade.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.Status(http.StatusOK)
}

// Logout handles POST /api/auth/logout. The staff cart is discarded.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.TokenFromRequest(c); token != "" {
		h.facade.Logout(token)
	}
	middleware.ClearAuthCookie(c)
	c.Status(http.StatusNoContent)
}
