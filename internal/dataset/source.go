package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// FileSource loads a workbook or CSV directory from local disk
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) (*Dataset, error) {
	return Open(s.Path)
}

// ObjectDownloader fetches an object from a bucket to a local path
type ObjectDownloader interface {
	DownloadObject(ctx context.Context, key string, destPath string) error
}

// ObjectSource downloads the workbook from an S3-compatible bucket into CacheDir before loading it
type ObjectSource struct {
	Store    ObjectDownloader
	Key      string
	CacheDir string
}

func (s ObjectSource) Load(ctx context.Context) (*Dataset, error) {
	if s.Key == "" {
		return nil, fmt.Errorf("dataset object key must be provided")
	}
	dir := s.CacheDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed creating dataset cache dir %s: %w", dir, err)
	}

	dest := filepath.Join(dir, filepath.Base(s.Key))
	if err := s.Store.DownloadObject(ctx, s.Key, dest); err != nil {
		return nil, fmt.Errorf("failed to download dataset %s: %w", s.Key, err)
	}
	log.Info().Str("key", s.Key).Str("path", dest).Msg("dataset downloaded from object storage")

	return Open(dest)
}

// WorkbookDownloader streams a workbook as XLSX
type WorkbookDownloader interface {
	DownloadWorkbook(ctx context.Context, fileID string, w io.Writer) error
}

// DriveSource reads the workbook straight from a Google Drive file
type DriveSource struct {
	Drive  WorkbookDownloader
	FileID string
}

func (s DriveSource) Load(ctx context.Context) (*Dataset, error) {
	if s.FileID == "" {
		return nil, fmt.Errorf("drive file id must be provided")
	}
	var buf bytes.Buffer
	if err := s.Drive.DownloadWorkbook(ctx, s.FileID, &buf); err != nil {
		return nil, fmt.Errorf("failed to download dataset %s from drive: %w", s.FileID, err)
	}
	log.Info().Str("file_id", s.FileID).Int("bytes", buf.Len()).Msg("dataset downloaded from drive")

	return LoadWorkbook(&buf)
}
