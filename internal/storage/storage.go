package storage

import (
	"context"
	"fmt"

	"github.com/fuga-catalog/catalog/internal/common/config"
	"go.uber.org/zap"
)

// UploadResult is returned by a successful upload. ProviderKey is the opaque
// identifier the provider uses to address the blob; URL is the public
// location stored verbatim by callers.
type UploadResult struct {
	URL         string
	ProviderKey string
}

// Provider stores and deletes binary blobs. Implementations must generate a
// collision-resistant object key independent of the original filename.
type Provider interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (*UploadResult, error)
	Delete(ctx context.Context, providerKey string) error
}

// NewProvider creates a storage provider based on configuration
func NewProvider(cfg *config.StorageConfig, logger *zap.Logger) (Provider, error) {
	switch cfg.Type {
	case "s3":
		return NewS3Provider(&cfg.S3, logger)
	case "memory":
		return NewMemoryProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
