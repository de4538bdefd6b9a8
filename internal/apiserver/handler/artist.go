package handler

import (
	"net/http"

	"github.com/fuga-catalog/catalog/internal/apiserver/middleware"
	"github.com/fuga-catalog/catalog/internal/common/dto"
	"github.com/fuga-catalog/catalog/internal/common/errorx"
	"github.com/gin-gonic/gin"
)

// SearchArtists handles GET /artists?query=
func (h *Handler) SearchArtists(c *gin.Context) {
	artists, err := h.artists.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, artists)
}

// CreateArtist handles POST /artists
func (h *Handler) CreateArtist(c *gin.Context) {
	var req dto.CreateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Respond(c, errorx.NewValidation("Artist name is required"))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	artist, err := h.artists.Create(c.Request.Context(), req.Name, claims.UserID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, artist)
}

// ListContributionTypes handles GET /contribution-types
func (h *Handler) ListContributionTypes(c *gin.Context) {
	types, err := h.contributionTypes.List(c.Request.Context())
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, types)
}
