package catalog

import (
	"context"
	"strings"

	"github.com/fuga-catalog/catalog/internal/apiserver/database"
	"github.com/fuga-catalog/catalog/internal/common/errorx"
)

// searchResultCap bounds artist search results.
const searchResultCap = 50

// ArtistService is a simple search/create directory over artist names.
type ArtistService struct {
	store database.Store
}

// NewArtistService creates a new artist service
func NewArtistService(store database.Store) *ArtistService {
	return &ArtistService{store: store}
}

// Search returns artists matching query case-insensitively, ordered by name
// ascending. An empty query returns all artists up to the cap.
func (s *ArtistService) Search(ctx context.Context, query string) ([]*database.Artist, error) {
	return s.store.SearchArtists(ctx, query, searchResultCap)
}

// Create persists a new artist with a trimmed name.
func (s *ArtistService) Create(ctx context.Context, name string, userID uint) (*database.Artist, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errorx.NewValidation("Artist name is required")
	}

	artist := &database.Artist{
		Name:            trimmed,
		CreatedByUserID: userID,
	}
	if err := s.store.CreateArtist(ctx, artist); err != nil {
		return nil, err
	}
	return artist, nil
}
