package catalog

import (
	"context"

	"github.com/fuga-catalog/catalog/internal/apiserver/database"
)

// ContributionTypeService lists the static contribution type reference data.
type ContributionTypeService struct {
	store database.Store
}

// NewContributionTypeService creates a new contribution type service
func NewContributionTypeService(store database.Store) *ContributionTypeService {
	return &ContributionTypeService{store: store}
}

// List returns all contribution types ordered by name ascending.
func (s *ContributionTypeService) List(ctx context.Context) ([]*database.ContributionType, error) {
	return s.store.ListContributionTypes(ctx)
}
