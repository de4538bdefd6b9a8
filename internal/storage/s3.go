package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/fuga-catalog/catalog/internal/common/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const objectPrefix = "covers/"

// S3Provider stores blobs in an S3-compatible bucket.
type S3Provider struct {
	client        *s3.S3
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

// NewS3Provider creates a new S3 storage provider
func NewS3Provider(cfg *config.S3Config, logger *zap.Logger) (*S3Provider, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.UsePathStyle {
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	return &S3Provider{
		client:        s3.New(sess),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Upload stores data under a generated key and returns its public URL.
// The key is derived from a fresh UUID; only the extension of the original
// filename is kept.
func (p *S3Provider) Upload(ctx context.Context, data []byte, filename, contentType string) (*UploadResult, error) {
	key := objectPrefix + uuid.NewString() + path.Ext(filename)

	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	p.logger.Debug("uploaded object",
		zap.String("bucket", p.bucket),
		zap.String("key", key),
		zap.Int("size", len(data)))

	return &UploadResult{
		URL:         p.publicURL(key),
		ProviderKey: key,
	}, nil
}

// Delete removes the object addressed by providerKey.
func (p *S3Provider) Delete(ctx context.Context, providerKey string) error {
	_, err := p.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(providerKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", providerKey, err)
	}
	return nil
}

func (p *S3Provider) publicURL(key string) string {
	if p.publicBaseURL != "" {
		return p.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", p.bucket, key)
}
