package catalog

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fuga-catalog/catalog/internal/common/cnst"
	"github.com/fuga-catalog/catalog/internal/common/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apiErrorCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *errorx.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	return apiErr.Code
}

func TestCoverArtUpload_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// disallowed type fails even within size bounds
	_, err := env.coverArt.Upload(ctx, []byte("gif"), "image/gif", 1)
	assert.Equal(t, errorx.CodeInvalidFileType, apiErrorCode(t, err))

	// exactly the ceiling succeeds
	atLimit := bytes.Repeat([]byte{0xff}, cnst.MaxCoverArtSizeBytes)
	res, err := env.coverArt.Upload(ctx, atLimit, "image/jpeg", 1)
	require.NoError(t, err)
	assert.NotZero(t, res.CoverArtID)
	assert.NotEmpty(t, res.PublicURL)

	// one byte over fails
	over := bytes.Repeat([]byte{0xff}, cnst.MaxCoverArtSizeBytes+1)
	_, err = env.coverArt.Upload(ctx, over, "image/webp", 1)
	assert.Equal(t, errorx.CodeFileTooLarge, apiErrorCode(t, err))
}

func TestCoverArtUpload_PersistsUnmarkedRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.coverArt.Upload(ctx, []byte("img"), "image/png", 7)
	require.NoError(t, err)

	record, err := env.store.GetCoverArt(ctx, res.CoverArtID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", record.MimeType)
	assert.Equal(t, uint(7), record.CreatedByUserID)
	assert.Nil(t, record.MarkedForDeletionAt)
	assert.Equal(t, res.PublicURL, record.ResourceURI)
	assert.True(t, env.provider.Has(record.ProviderKey))
}

func TestDeleteIfOrphan_SetsMarkOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env.coverArt.now = func() time.Time { return base }

	id := env.uploadCoverArt(t, ctx)

	require.NoError(t, env.coverArt.DeleteIfOrphan(ctx, id))
	record, err := env.store.GetCoverArt(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, record.MarkedForDeletionAt)
	assert.Equal(t, base.Add(cnst.CoverArtRetention), record.MarkedForDeletionAt.UTC())

	// a second call does not reset the mark
	env.coverArt.now = func() time.Time { return base.Add(48 * time.Hour) }
	require.NoError(t, env.coverArt.DeleteIfOrphan(ctx, id))
	record, err = env.store.GetCoverArt(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, base.Add(cnst.CoverArtRetention), record.MarkedForDeletionAt.UTC())
}

func TestDeleteIfOrphan_NoopWhenReferenced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	coverArtID := env.uploadCoverArt(t, ctx)
	artistID := env.createArtist(t, ctx, "John Doe")
	env.createProduct(t, ctx, "Album", coverArtID, artistID)

	require.NoError(t, env.coverArt.DeleteIfOrphan(ctx, coverArtID))
	record, err := env.store.GetCoverArt(ctx, coverArtID)
	require.NoError(t, err)
	assert.Nil(t, record.MarkedForDeletionAt)
}

func TestDeleteIfOrphan_MissingRecordIsNoop(t *testing.T) {
	env := newTestEnv(t)
	assert.NoError(t, env.coverArt.DeleteIfOrphan(context.Background(), 9999))
}

func TestClearDeletionMark_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.uploadCoverArt(t, ctx)
	require.NoError(t, env.coverArt.DeleteIfOrphan(ctx, id))

	require.NoError(t, env.coverArt.ClearDeletionMark(ctx, id))
	require.NoError(t, env.coverArt.ClearDeletionMark(ctx, id))

	record, err := env.store.GetCoverArt(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, record.MarkedForDeletionAt)
}

func TestCleanupExpired_DeletesExpiredOrphans(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	base := time.Now()
	env.coverArt.now = func() time.Time { return base }

	expired := env.uploadCoverArt(t, ctx)
	fresh := env.uploadCoverArt(t, ctx)
	require.NoError(t, env.coverArt.DeleteIfOrphan(ctx, expired))
	require.NoError(t, env.coverArt.DeleteIfOrphan(ctx, fresh))

	// only the first mark has passed
	sweepAt := base.Add(cnst.CoverArtRetention).Add(time.Minute)
	freshRecord, err := env.store.GetCoverArt(ctx, fresh)
	require.NoError(t, err)
	later := sweepAt.Add(time.Hour)
	require.NoError(t, env.store.SetCoverArtDeletionMark(ctx, fresh, &later))
	expiredRecord, err := env.store.GetCoverArt(ctx, expired)
	require.NoError(t, err)

	deleted, err := env.coverArt.CleanupExpired(ctx, sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = env.store.GetCoverArt(ctx, expired)
	assert.Error(t, err)
	assert.False(t, env.provider.Has(expiredRecord.ProviderKey))

	// the unexpired record survives with its object intact
	_, err = env.store.GetCoverArt(ctx, fresh)
	assert.NoError(t, err)
	assert.True(t, env.provider.Has(freshRecord.ProviderKey))
}

func TestCleanupExpired_StorageFailureKeepsRecordForRetry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.uploadCoverArt(t, ctx)
	record, err := env.store.GetCoverArt(ctx, id)
	require.NoError(t, err)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, env.store.SetCoverArtDeletionMark(ctx, id, &past))

	// simulate a provider failure by removing the object out of band
	require.NoError(t, env.provider.Delete(ctx, record.ProviderKey))

	deleted, err := env.coverArt.CleanupExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	// row and mark survive so the next sweep retries
	survivor, err := env.store.GetCoverArt(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, survivor.MarkedForDeletionAt)
}

func TestCleanupExpired_SelfHealsReattachedCoverArt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	coverArtID := env.uploadCoverArt(t, ctx)
	artistID := env.createArtist(t, ctx, "Jane Doe")

	// mark first, then attach a product without clearing the mark, as a
	// racing writer would
	past := time.Now().Add(-time.Hour)
	require.NoError(t, env.store.SetCoverArtDeletionMark(ctx, coverArtID, &past))
	env.createProduct(t, ctx, "Racy Album", coverArtID, artistID)
	require.NoError(t, env.store.SetCoverArtDeletionMark(ctx, coverArtID, &past))

	deleted, err := env.coverArt.CleanupExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	record, err := env.store.GetCoverArt(ctx, coverArtID)
	require.NoError(t, err)
	assert.Nil(t, record.MarkedForDeletionAt)
}
