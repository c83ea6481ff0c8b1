package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/config"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/dataset"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/drive"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/storage"
	"github.com/urfave/cli/v2"
)

func bucketFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "storage-provider", Value: "minio", EnvVars: []string{"STORAGE_PROVIDER"}, Usage: "minio, s3 or sevalla"},
		&cli.StringFlag{Name: "storage-endpoint", EnvVars: []string{"STORAGE_ENDPOINT"}},
		&cli.StringFlag{Name: "storage-access-key", EnvVars: []string{"STORAGE_ACCESS_KEY"}},
		&cli.StringFlag{Name: "storage-secret-key", EnvVars: []string{"STORAGE_SECRET_KEY"}},
		&cli.StringFlag{Name: "storage-bucket", EnvVars: []string{"STORAGE_BUCKET"}},
		&cli.StringFlag{Name: "storage-region", Value: "us-east-1", EnvVars: []string{"STORAGE_REGION"}},
		&cli.BoolFlag{Name: "storage-use-ssl", Value: true, EnvVars: []string{"STORAGE_USE_SSL"}},
		&cli.StringFlag{Name: "prefix", Usage: "Key prefix holding the workbooks", EnvVars: []string{"DATASET_PREFIX"}},
		&cli.StringFlag{Name: "key", Usage: "Workbook key, relative to prefix; newest workbook when empty", EnvVars: []string{"DATASET_KEY"}},
		&cli.StringFlag{Name: "download-dir", Value: "./data/tmp/bucket", Usage: "Local directory for downloaded workbooks"},
	}
}

func storageConfigFrom(c *cli.Context) config.StorageConfig {
	return config.StorageConfig{
		Provider:  c.String("storage-provider"),
		Endpoint:  c.String("storage-endpoint"),
		AccessKey: c.String("storage-access-key"),
		SecretKey: c.String("storage-secret-key"),
		Bucket:    c.String("storage-bucket"),
		Region:    c.String("storage-region"),
		UseSSL:    c.Bool("storage-use-ssl"),
	}
}

func runBucketImport(c *cli.Context) error {
	client, err := storage.New(storageConfigFrom(c))
	if err != nil {
		return err
	}

	key, err := resolveWorkbookKey(c.Context, client, c.String("prefix"), c.String("key"))
	if err != nil {
		return err
	}

	return importFrom(c, dataset.ObjectSource{
		Store:    client,
		Key:      key,
		CacheDir: c.String("download-dir"),
	})
}

func runDriveImport(c *cli.Context) error {
	svc, err := drive.NewService(c.Context, c.String("credentials"))
	if err != nil {
		return err
	}
	return importFrom(c, dataset.DriveSource{Drive: svc, FileID: c.String("file-id")})
}

// resolveWorkbookKey returns the explicit key, or the last workbook under prefix in key order
func resolveWorkbookKey(ctx context.Context, client storage.ObjectStorage, prefix, override string) (string, error) {
	if override != "" {
		return resolveObjectKey(prefix, override), nil
	}

	listPrefix := strings.TrimSpace(prefix)
	objects, err := client.ListObjects(ctx, listPrefix)
	if err != nil {
		return "", fmt.Errorf("failed to list objects for prefix %s: %w", listPrefix, err)
	}

	var keys []string
	for _, obj := range objects {
		lower := strings.ToLower(obj.Key)
		if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
			keys = append(keys, obj.Key)
		}
	}
	if len(keys) == 0 {
		return "", fmt.Errorf("no workbooks found for prefix %s", prefix)
	}

	sort.Strings(keys)
	return keys[len(keys)-1], nil
}

func resolveObjectKey(prefix, override string) string {
	if override == "" {
		return strings.TrimSpace(prefix)
	}
	if prefix == "" {
		return strings.TrimPrefix(override, "/")
	}

	prefixTrimmed := strings.TrimSuffix(strings.TrimSpace(prefix), "/")
	overrideTrimmed := strings.TrimPrefix(strings.TrimSpace(override), "/")

	if strings.HasPrefix(overrideTrimmed, prefixTrimmed) {
		return overrideTrimmed
	}
	return fmt.Sprintf("%s/%s", prefixTrimmed, overrideTrimmed)
}
