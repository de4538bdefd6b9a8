package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryProvider_UploadAndDelete(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	res, err := p.Upload(ctx, []byte("img-bytes"), "cover.png", "image/png")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ProviderKey, "covers/"))
	assert.True(t, strings.HasSuffix(res.ProviderKey, ".png"))
	assert.Equal(t, "memory://"+res.ProviderKey, res.URL)
	assert.Equal(t, 1, p.Len())

	assert.NoError(t, p.Delete(ctx, res.ProviderKey))
	assert.Equal(t, 0, p.Len())

	// repeated delete of a removed key errors
	assert.Error(t, p.Delete(ctx, res.ProviderKey))
}

func TestMemoryProvider_KeyIndependentOfFilename(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	a, err := p.Upload(ctx, []byte("x"), "same.jpg", "image/jpeg")
	assert.NoError(t, err)
	b, err := p.Upload(ctx, []byte("x"), "same.jpg", "image/jpeg")
	assert.NoError(t, err)

	assert.NotEqual(t, a.ProviderKey, b.ProviderKey)
	assert.NotContains(t, a.ProviderKey, "same")
}
