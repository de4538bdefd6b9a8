package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/fuga-catalog/catalog/internal/apiserver/database"
	"github.com/fuga-catalog/catalog/internal/catalog"
	"github.com/fuga-catalog/catalog/internal/common/config"
	"github.com/fuga-catalog/catalog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newScheduler(t *testing.T) (*CleanupScheduler, database.Store, *storage.MemoryProvider) {
	t.Helper()
	store, err := database.NewStore(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	provider := storage.NewMemoryProvider()
	coverArt := catalog.NewCoverArtService(store, provider, zap.NewNop())
	return NewCleanupScheduler(coverArt, time.Minute, nil, zap.NewNop()), store, provider
}

func TestRunOnce_DeletesExpiredOrphans(t *testing.T) {
	s, store, provider := newScheduler(t)
	ctx := context.Background()

	result, err := provider.Upload(ctx, []byte("bytes"), "stale.png", "image/png")
	require.NoError(t, err)
	record := &database.CoverArt{
		ResourceURI: result.URL,
		ProviderKey: result.ProviderKey,
		MimeType:    "image/png",
	}
	require.NoError(t, store.CreateCoverArt(ctx, record))

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, store.SetCoverArtDeletionMark(ctx, record.ID, &expired))

	s.RunOnce(ctx)

	_, err = store.GetCoverArt(ctx, record.ID)
	assert.Error(t, err)
	assert.Zero(t, provider.Len())
}

func TestStartStop_Idempotent(t *testing.T) {
	s, _, _ := newScheduler(t)

	s.Start(context.Background())
	s.Start(context.Background())
	s.Stop()
	s.Stop()
}
