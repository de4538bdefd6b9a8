package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/fuga-catalog/catalog/internal/apiserver/database"
	"github.com/fuga-catalog/catalog/internal/auth/jwt"
	"github.com/fuga-catalog/catalog/internal/common/config"
	"github.com/fuga-catalog/catalog/internal/common/dto"
	"github.com/fuga-catalog/catalog/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv wires the services against an in-memory sqlite store and the
// in-memory storage provider.
type testEnv struct {
	store    database.Store
	provider *storage.MemoryProvider
	auth     *AuthService
	artists  *ArtistService
	types    *ContributionTypeService
	coverArt *CoverArtService
	products *ProductService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := database.NewStore(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := zap.NewNop()
	jwtService, err := jwt.NewService(jwt.Config{SecretKey: "test-secret", Duration: 24 * time.Hour})
	require.NoError(t, err)

	provider := storage.NewMemoryProvider()
	coverArt := NewCoverArtService(store, provider, logger)

	return &testEnv{
		store:    store,
		provider: provider,
		auth:     NewAuthService(store, jwtService, logger),
		artists:  NewArtistService(store),
		types:    NewContributionTypeService(store),
		coverArt: coverArt,
		products: NewProductService(store, coverArt, logger),
	}
}

func (e *testEnv) seed(t *testing.T, ctx context.Context) {
	t.Helper()
	// bcrypt hash of "password"
	require.NoError(t, e.store.EnsureSeedData(ctx, "admin@example.com",
		"$2a$10$Csj9zA/Ji6PV.2F236WCieVyrwO03PRpv.aFEknBkzhPvdUz2YnoO"))
}

// uploadCoverArt stores a small valid image and returns its id.
func (e *testEnv) uploadCoverArt(t *testing.T, ctx context.Context) uint {
	t.Helper()
	res, err := e.coverArt.Upload(ctx, []byte("png-bytes"), "image/png", 1)
	require.NoError(t, err)
	return res.CoverArtID
}

// createArtist registers an artist and returns its id.
func (e *testEnv) createArtist(t *testing.T, ctx context.Context, name string) uint {
	t.Helper()
	artist, err := e.artists.Create(ctx, name, 1)
	require.NoError(t, err)
	return artist.ID
}

// createProduct builds a product referencing the given cover art and artist.
func (e *testEnv) createProduct(t *testing.T, ctx context.Context, name string, coverArtID, artistID uint) *database.Product {
	t.Helper()
	product, err := e.products.Create(ctx, dto.CreateProductRequest{
		Name:         name,
		CoverArtID:   coverArtID,
		Contributors: []dto.ContributorInput{{ArtistID: artistID}},
	}, 1)
	require.NoError(t, err)
	return product
}
