package handler

import (
	"net/http"
	"strconv"

	"github.com/fuga-catalog/catalog/internal/apiserver/middleware"
	"github.com/fuga-catalog/catalog/internal/common/dto"
	"github.com/fuga-catalog/catalog/internal/common/errorx"
	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// ListProducts handles GET /products
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.errors.Respond(c, errorx.NewNotFound("Product not found"))
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /products
func (h *Handler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Respond(c, errorx.NewValidation("Invalid request body"))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	product, err := h.products.Create(c.Request.Context(), req, claims.UserID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PATCH /products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.errors.Respond(c, errorx.NewNotFound("Product not found"))
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Respond(c, errorx.NewValidation("Invalid request body"))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	product, err := h.products.Update(c.Request.Context(), id, req, claims.UserID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.errors.Respond(c, errorx.NewNotFound("Product not found"))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	if err := h.products.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
