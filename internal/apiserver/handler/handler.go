package handler

import (
	"github.com/fuga-catalog/catalog/internal/auth/jwt"
	"github.com/fuga-catalog/catalog/internal/catalog"
	"github.com/fuga-catalog/catalog/internal/common/cnst"
	"github.com/fuga-catalog/catalog/internal/common/errorx"
	"github.com/fuga-catalog/catalog/internal/apiserver/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler wires the catalog services to the HTTP surface.
type Handler struct {
	auth              *catalog.AuthService
	artists           *catalog.ArtistService
	contributionTypes *catalog.ContributionTypeService
	coverArt          *catalog.CoverArtService
	products          *catalog.ProductService
	errors            *errorx.ErrorHandler
	logger            *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	auth *catalog.AuthService,
	artists *catalog.ArtistService,
	contributionTypes *catalog.ContributionTypeService,
	coverArt *catalog.CoverArtService,
	products *catalog.ProductService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		auth:              auth,
		artists:           artists,
		contributionTypes: contributionTypes,
		coverArt:          coverArt,
		products:          products,
		errors:            errorx.NewErrorHandler(logger),
		logger:            logger,
	}
}

// RegisterRoutes configures all API routes with their permission gates.
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtService *jwt.Service) {
	authn := middleware.Auth(jwtService)

	auth := r.Group("/auth")
	auth.POST("/login", h.Login)
	auth.GET("/me", authn, h.Me)

	api := r.Group("/", authn)

	api.GET("/artists", middleware.RequirePermission(cnst.PermissionProductView), h.SearchArtists)
	api.POST("/artists", middleware.RequirePermission(cnst.PermissionProductCreate), h.CreateArtist)

	api.GET("/contribution-types", middleware.RequirePermission(cnst.PermissionProductView), h.ListContributionTypes)

	api.POST("/cover-art", middleware.RequirePermission(cnst.PermissionProductCreate), h.UploadCoverArt)

	api.GET("/products", middleware.RequirePermission(cnst.PermissionProductView), h.ListProducts)
	api.GET("/products/:id", middleware.RequirePermission(cnst.PermissionProductView), h.GetProduct)
	api.POST("/products", middleware.RequirePermission(cnst.PermissionProductCreate), h.CreateProduct)
	api.PATCH("/products/:id", middleware.RequirePermission(cnst.PermissionProductEdit), h.UpdateProduct)
	api.DELETE("/products/:id", middleware.RequirePermission(cnst.PermissionProductEdit), h.DeleteProduct)
}
