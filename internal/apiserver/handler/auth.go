package handler

import (
	"net/http"

	"github.com/fuga-catalog/catalog/internal/apiserver/middleware"
	"github.com/fuga-catalog/catalog/internal/common/dto"
	"github.com/fuga-catalog/catalog/internal/common/errorx"
	"github.com/gin-gonic/gin"
)

// Login handles POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Respond(c, errorx.NewValidation("Email and password are required"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Me handles GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		h.errors.Respond(c, errorx.NewUnauthorized("Not authenticated"))
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
