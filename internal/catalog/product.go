package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/fuga-catalog/catalog/internal/apiserver/database"
	"github.com/fuga-catalog/catalog/internal/common/dto"
	"github.com/fuga-catalog/catalog/internal/common/errorx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductService manages the product lifecycle and coordinates cover art
// deletion marks with the CoverArtService.
type ProductService struct {
	store    database.Store
	coverArt *CoverArtService
	logger   *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store database.Store, coverArt *CoverArtService, logger *zap.Logger) *ProductService {
	return &ProductService{
		store:    store,
		coverArt: coverArt,
		logger:   logger,
	}
}

// List returns all active products with cover art and contributors joined,
// newest first.
func (s *ProductService) List(ctx context.Context) ([]*database.Product, error) {
	return s.store.ListProducts(ctx)
}

// GetByID returns an active product with cover art and contributors joined.
func (s *ProductService) GetByID(ctx context.Context, id uint) (*database.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.NewNotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}

// Create validates the input, clears the cover art's deletion mark before
// the product row is written, and persists the product with its contributor
// rows.
func (s *ProductService) Create(ctx context.Context, input dto.CreateProductRequest, userID uint) (*database.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	// The mark must be cleared before the row exists so a concurrent sweep
	// cannot delete a cover art that is about to be attached.
	if err := s.coverArt.ClearDeletionMark(ctx, input.CoverArtID); err != nil {
		return nil, err
	}

	coverArtID := input.CoverArtID
	product := &database.Product{
		Name:            strings.TrimSpace(input.Name),
		Status:          database.ProductActive,
		CoverArtID:      &coverArtID,
		CreatedByUserID: userID,
		ProductArtists:  toProductArtists(input.Contributors),
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.Uint("product_id", product.ID),
		zap.Uint("user_id", userID))

	return s.GetByID(ctx, product.ID)
}

func validateProductInput(input dto.CreateProductRequest) error {
	if strings.TrimSpace(input.Name) == "" {
		return errorx.NewValidation("Product name is required")
	}
	if input.CoverArtID == 0 {
		return errorx.NewValidation("Cover art is required")
	}
	if len(input.Contributors) == 0 {
		return errorx.NewValidation("At least one artist is required")
	}
	return nil
}

// Update applies a partial update. When contributors are supplied the full
// set is replaced atomically with the field update. After the transaction
// commits, a cover art that was swapped out starts its orphan countdown.
func (s *ProductService) Update(ctx context.Context, id uint, input dto.UpdateProductRequest, userID uint) (*database.Product, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldCoverArtID := existing.CoverArtID

	if input.CoverArtID != nil {
		if err := s.coverArt.ClearDeletionMark(ctx, *input.CoverArtID); err != nil {
			return nil, err
		}
	}

	fields := make(map[string]any)
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.CoverArtID != nil {
		fields["cover_art_id"] = *input.CoverArtID
	}

	var contributors *[]database.ProductArtist
	if input.Contributors != nil {
		rows := toProductArtists(*input.Contributors)
		contributors = &rows
	}

	if err := s.store.UpdateProduct(ctx, id, fields, contributors); err != nil {
		return nil, err
	}

	if input.CoverArtID != nil && oldCoverArtID != nil && *oldCoverArtID != *input.CoverArtID {
		if err := s.coverArt.DeleteIfOrphan(ctx, *oldCoverArtID); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

// Delete soft-deletes the product, severing its cover art reference in the
// same update, then starts the orphan countdown for the old cover art.
// Deleted products are terminal: there is no restore.
func (s *ProductService) Delete(ctx context.Context, id uint, userID uint) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	coverArtID := existing.CoverArtID

	if err := s.store.SoftDeleteProduct(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted",
		zap.Uint("product_id", id),
		zap.Uint("user_id", userID))

	if coverArtID != nil {
		return s.coverArt.DeleteIfOrphan(ctx, *coverArtID)
	}
	return nil
}

func toProductArtists(contributors []dto.ContributorInput) []database.ProductArtist {
	rows := make([]database.ProductArtist, 0, len(contributors))
	for _, c := range contributors {
		rows = append(rows, database.ProductArtist{
			ArtistID:           c.ArtistID,
			ContributionTypeID: c.ContributionTypeID,
		})
	}
	return rows
}
