package main

import (
	"context"
	"testing"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listOnlyStorage struct {
	storage.ObjectStorage
	objects []storage.ObjectInfo
}

func (s listOnlyStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return s.objects, nil
}

func TestResolveObjectKey(t *testing.T) {
	assert.Equal(t, "datasets", resolveObjectKey(" datasets ", ""))
	assert.Equal(t, "inventory.xlsx", resolveObjectKey("", "/inventory.xlsx"))
	assert.Equal(t, "datasets/inventory.xlsx", resolveObjectKey("datasets/", "inventory.xlsx"))
	assert.Equal(t, "datasets/2024/inventory.xlsx", resolveObjectKey("datasets", "/datasets/2024/inventory.xlsx"))
}

func TestResolveWorkbookKey(t *testing.T) {
	client := listOnlyStorage{objects: []storage.ObjectInfo{
		{Key: "datasets/2024-01.xlsx"},
		{Key: "datasets/notes.txt"},
		{Key: "datasets/2024-03.XLSX"},
		{Key: "datasets/2024-02.xlsx"},
	}}

	key, err := resolveWorkbookKey(context.Background(), client, "datasets", "")
	require.NoError(t, err)
	assert.Equal(t, "datasets/2024-03.XLSX", key)

	key, err = resolveWorkbookKey(context.Background(), client, "datasets", "2024-01.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "datasets/2024-01.xlsx", key)

	_, err = resolveWorkbookKey(context.Background(), listOnlyStorage{}, "empty", "")
	assert.Error(t, err)
}
