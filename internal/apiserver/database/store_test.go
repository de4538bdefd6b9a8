package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fuga-catalog/catalog/internal/common/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewStore(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestEnsureSeedData_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureSeedData(ctx, "admin@example.com", "hash"))
	require.NoError(t, s.EnsureSeedData(ctx, "admin@example.com", "hash"))

	user, err := s.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.Equal(t, []string{"Admin"}, user.RoleNames())
	assert.ElementsMatch(t,
		[]string{"product:view", "product:create", "product:edit"},
		user.PermissionKeys())

	types, err := s.ListContributionTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 6)
}

func TestUserPermissionKeys_DedupAcrossRoles(t *testing.T) {
	user := &User{
		UserRoles: []UserRole{
			{Role: Role{Name: "A", RolePermissions: []RolePermission{
				{Permission: Permission{Key: "x"}},
				{Permission: Permission{Key: "y"}},
			}}},
			{Role: Role{Name: "B", RolePermissions: []RolePermission{
				{Permission: Permission{Key: "y"}},
				{Permission: Permission{Key: "z"}},
			}}},
		},
	}

	assert.ElementsMatch(t, []string{"x", "y", "z"}, user.PermissionKeys())
	assert.Equal(t, []string{"A", "B"}, user.RoleNames())
}

func TestSearchArtists_CapAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 55; i++ {
		require.NoError(t, s.CreateArtist(ctx, &Artist{Name: fmt.Sprintf("Artist %03d", i)}))
	}

	results, err := s.SearchArtists(ctx, "", 50)
	require.NoError(t, err)
	assert.Len(t, results, 50)
	assert.Equal(t, "Artist 000", results[0].Name)
}

func TestUpdateProduct_ReplacesContributorsAtomically(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a1 := &Artist{Name: "One"}
	a2 := &Artist{Name: "Two"}
	require.NoError(t, s.CreateArtist(ctx, a1))
	require.NoError(t, s.CreateArtist(ctx, a2))

	product := &Product{
		Name:           "Album",
		Status:         ProductActive,
		ProductArtists: []ProductArtist{{ArtistID: a1.ID}},
	}
	require.NoError(t, s.CreateProduct(ctx, product))

	replacement := []ProductArtist{{ArtistID: a2.ID}}
	require.NoError(t, s.UpdateProduct(ctx, product.ID, map[string]any{"name": "Renamed"}, &replacement))

	got, err := s.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	require.Len(t, got.ProductArtists, 1)
	assert.Equal(t, a2.ID, got.ProductArtists[0].ArtistID)
}

func TestSoftDeleteProduct_TerminalAndSevered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	coverArt := &CoverArt{ResourceURI: "u", ProviderKey: "k", MimeType: "image/png"}
	require.NoError(t, s.CreateCoverArt(ctx, coverArt))

	artist := &Artist{Name: "One"}
	require.NoError(t, s.CreateArtist(ctx, artist))

	product := &Product{
		Name:           "Album",
		Status:         ProductActive,
		CoverArtID:     &coverArt.ID,
		ProductArtists: []ProductArtist{{ArtistID: artist.ID}},
	}
	require.NoError(t, s.CreateProduct(ctx, product))

	require.NoError(t, s.SoftDeleteProduct(ctx, product.ID))

	_, err := s.GetProduct(ctx, product.ID)
	assert.Error(t, err)

	count, err := s.CountActiveProductsForCoverArt(ctx, coverArt.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCoverArtMarkLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	coverArt := &CoverArt{ResourceURI: "u", ProviderKey: "k", MimeType: "image/png"}
	require.NoError(t, s.CreateCoverArt(ctx, coverArt))

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	require.NoError(t, s.SetCoverArtDeletionMark(ctx, coverArt.ID, &past))
	expired, err := s.ListExpiredCoverArt(ctx, time.Now())
	require.NoError(t, err)
	assert.Len(t, expired, 1)

	require.NoError(t, s.SetCoverArtDeletionMark(ctx, coverArt.ID, &future))
	expired, err = s.ListExpiredCoverArt(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, expired)

	require.NoError(t, s.SetCoverArtDeletionMark(ctx, coverArt.ID, nil))
	got, err := s.GetCoverArt(ctx, coverArt.ID)
	require.NoError(t, err)
	assert.Nil(t, got.MarkedForDeletionAt)

	require.NoError(t, s.DeleteCoverArt(ctx, coverArt.ID))
	_, err = s.GetCoverArt(ctx, coverArt.ID)
	assert.Error(t, err)
}
