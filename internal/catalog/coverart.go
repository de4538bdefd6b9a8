package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fuga-catalog/catalog/internal/apiserver/database"
	"github.com/fuga-catalog/catalog/internal/common/cnst"
	"github.com/fuga-catalog/catalog/internal/common/dto"
	"github.com/fuga-catalog/catalog/internal/common/errorx"
	"github.com/fuga-catalog/catalog/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CoverArtService manages the cover art lifecycle: upload validation,
// persistence, and the mark-and-sweep orphan deletion policy.
type CoverArtService struct {
	store   database.Store
	storage storage.Provider
	logger  *zap.Logger
	now     func() time.Time
}

// NewCoverArtService creates a new cover art service
func NewCoverArtService(store database.Store, provider storage.Provider, logger *zap.Logger) *CoverArtService {
	return &CoverArtService{
		store:   store,
		storage: provider,
		logger:  logger,
		now:     time.Now,
	}
}

// Upload validates the file, stores it through the storage provider and
// persists a cover art record with no deletion mark.
func (s *CoverArtService) Upload(ctx context.Context, data []byte, mimeType string, userID uint) (*dto.CoverArtUploadResponse, error) {
	if err := validateFile(data, mimeType); err != nil {
		return nil, err
	}

	ext := strings.TrimPrefix(mimeType, "image/")
	filename := fmt.Sprintf("%s.%s", uuid.NewString(), ext)

	result, err := s.storage.Upload(ctx, data, filename, mimeType)
	if err != nil {
		s.logger.Error("cover art upload to storage failed", zap.Error(err))
		return nil, errorx.NewStorage("Failed to store file")
	}

	coverArt := &database.CoverArt{
		ResourceURI:     result.URL,
		ProviderKey:     result.ProviderKey,
		MimeType:        mimeType,
		CreatedByUserID: userID,
	}
	if err := s.store.CreateCoverArt(ctx, coverArt); err != nil {
		return nil, err
	}

	return &dto.CoverArtUploadResponse{
		CoverArtID: coverArt.ID,
		PublicURL:  coverArt.ResourceURI,
	}, nil
}

func validateFile(data []byte, mimeType string) error {
	if !cnst.IsAllowedImageType(mimeType) {
		return errorx.New(400, errorx.CodeInvalidFileType,
			fmt.Sprintf("Invalid file type. Allowed: %s", strings.Join(cnst.AllowedImageTypes, ", ")))
	}
	if len(data) > cnst.MaxCoverArtSizeBytes {
		return errorx.New(400, errorx.CodeFileTooLarge,
			fmt.Sprintf("File too large. Maximum: %dMB", cnst.MaxCoverArtSizeBytes/1024/1024))
	}
	return nil
}

// DeleteIfOrphan sets the deletion mark on a cover art that no active
// product references. Already-marked or still-referenced records are left
// untouched. This is the only place a mark is set.
func (s *CoverArtService) DeleteIfOrphan(ctx context.Context, coverArtID uint) error {
	count, err := s.store.CountActiveProductsForCoverArt(ctx, coverArtID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	coverArt, err := s.store.GetCoverArt(ctx, coverArtID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if coverArt.MarkedForDeletionAt != nil {
		return nil
	}

	deleteAt := s.now().Add(cnst.CoverArtRetention)
	s.logger.Info("marking orphaned cover art for deletion",
		zap.Uint("cover_art_id", coverArtID),
		zap.Time("delete_at", deleteAt))
	return s.store.SetCoverArtDeletionMark(ctx, coverArtID, &deleteAt)
}

// ClearDeletionMark unconditionally clears the mark. Idempotent. Must be
// called before a cover art is (re)attached to any product.
func (s *CoverArtService) ClearDeletionMark(ctx context.Context, coverArtID uint) error {
	return s.store.SetCoverArtDeletionMark(ctx, coverArtID, nil)
}

// CleanupExpired deletes every cover art whose mark has passed and that is
// still orphaned, returning the number of records removed. Storage failures
// are logged and skipped so the row stays behind for the next sweep. Marked
// records that regained a reference have their mark cleared.
func (s *CoverArtService) CleanupExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.store.ListExpiredCoverArt(ctx, now)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, coverArt := range expired {
		count, err := s.store.CountActiveProductsForCoverArt(ctx, coverArt.ID)
		if err != nil {
			s.logger.Error("cleanup: failed to re-check orphan status",
				zap.Uint("cover_art_id", coverArt.ID), zap.Error(err))
			continue
		}

		if count > 0 {
			// A product was attached between marking and sweep. Self-heal.
			s.logger.Warn("cleanup: marked cover art is no longer orphaned, clearing mark",
				zap.Uint("cover_art_id", coverArt.ID))
			if err := s.ClearDeletionMark(ctx, coverArt.ID); err != nil {
				s.logger.Error("cleanup: failed to clear deletion mark",
					zap.Uint("cover_art_id", coverArt.ID), zap.Error(err))
			}
			continue
		}

		if err := s.storage.Delete(ctx, coverArt.ProviderKey); err != nil {
			s.logger.Error("cleanup: failed to delete cover art object",
				zap.Uint("cover_art_id", coverArt.ID),
				zap.String("provider_key", coverArt.ProviderKey),
				zap.Error(err))
			continue
		}
		if err := s.store.DeleteCoverArt(ctx, coverArt.ID); err != nil {
			s.logger.Error("cleanup: failed to delete cover art record",
				zap.Uint("cover_art_id", coverArt.ID), zap.Error(err))
			continue
		}
		deleted++
	}

	return deleted, nil
}
