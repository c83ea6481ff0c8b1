package main

import (
	"context"
	"testing"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/config"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatasetSource(t *testing.T) {
	ctx := context.Background()

	src, err := newDatasetSource(ctx, &config.Config{App: config.AppConfig{DatasetSource: "file", DatasetPath: "a.xlsx"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, dataset.FileSource{Path: "a.xlsx"}, src)

	src, err = newDatasetSource(ctx, &config.Config{
		App: config.AppConfig{DatasetSource: "s3", DatasetKey: "datasets/a.xlsx", DataDir: "/tmp/data"},
		Storage: config.StorageConfig{
			Provider: "minio", Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b", Bucket: "c",
		},
	}, nil)
	require.NoError(t, err)
	obj, ok := src.(dataset.ObjectSource)
	require.True(t, ok)
	assert.Equal(t, "datasets/a.xlsx", obj.Key)
	assert.Equal(t, "/tmp/data/cache", obj.CacheDir)

	_, err = newDatasetSource(ctx, &config.Config{App: config.AppConfig{DatasetSource: "postgres"}}, nil)
	assert.ErrorContains(t, err, "DB_ENABLED")

	_, err = newDatasetSource(ctx, &config.Config{App: config.AppConfig{DatasetSource: "ftp"}}, nil)
	assert.ErrorContains(t, err, "unknown dataset source")
}
