package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/config"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/dataset"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/drive"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/repository"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/storage"
)

// newDatasetSource picks where the workbook tables are read from
func newDatasetSource(ctx context.Context, cfg *config.Config, db *postgres.DB) (repository.DatasetRepository, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.App.DatasetSource)) {
	case "", "file":
		return dataset.FileSource{Path: cfg.App.DatasetPath}, nil
	case "s3", "bucket":
		client, err := storage.New(cfg.Storage)
		if err != nil {
			return nil, err
		}
		return dataset.ObjectSource{
			Store:    client,
			Key:      cfg.App.DatasetKey,
			CacheDir: filepath.Join(cfg.App.DataDir, "cache"),
		}, nil
	case "drive":
		svc, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON)
		if err != nil {
			return nil, err
		}
		return dataset.DriveSource{Drive: svc, FileID: cfg.App.DatasetKey}, nil
	case "postgres", "db":
		if db == nil {
			return nil, fmt.Errorf("dataset source postgres requires DB_ENABLED=true")
		}
		return postgres.NewDatasetRepository(db), nil
	}
	return nil, fmt.Errorf("unknown dataset source %q", cfg.App.DatasetSource)
}
