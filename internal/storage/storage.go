package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/config"
)

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the S3-compatible operations used to fetch datasets
// and publish exported reports.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DownloadObject(ctx context.Context, key string, destPath string) error
	UploadObject(ctx context.Context, key string, data []byte) error
}

// New returns the client for the configured provider
func New(cfg config.StorageConfig) (ObjectStorage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "minio", "s3":
		return NewMinioClient(cfg)
	case "sevalla":
		return NewSevallaClient(cfg)
	}
	return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
}

func normalizeEndpoint(endpoint string, useSSL bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	scheme := "https"
	if !useSSL {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s", scheme, strings.TrimPrefix(endpoint, "//"))
}

func validate(cfg config.StorageConfig) error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("storage endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return fmt.Errorf("storage credentials must be provided")
	}
	if cfg.Bucket == "" {
		return fmt.Errorf("storage bucket must be provided")
	}
	return nil
}
