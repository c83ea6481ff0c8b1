package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	mimeGoogleSheet = "application/vnd.google-apps.spreadsheet"
	mimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeFolder      = "application/vnd.google-apps.folder"
)

// Service fetches inventory workbooks from Google Drive
type Service struct {
	srv *drive.Service
}

func NewService(ctx context.Context, credentialsJSON string) (*Service, error) {
	// Parse credentials from JSON
	config, err := google.JWTConfigFromJSON(
		[]byte(credentialsJSON),
		drive.DriveReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to parse drive credentials: %w", err)
	}

	srv, err := drive.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Drive client: %w", err)
	}

	return &Service{srv: srv}, nil
}

type File struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	Size         int64  `json:"size,string,omitempty"`
}

// IsWorkbook reports whether the file can be read as an XLSX workbook
func (f *File) IsWorkbook() bool {
	return f.MimeType == mimeXLSX || f.MimeType == mimeGoogleSheet ||
		strings.HasSuffix(strings.ToLower(f.Name), ".xlsx")
}

// ListWorkbooks lists the spreadsheets in a folder, "root" when folderID is empty
func (s *Service) ListWorkbooks(ctx context.Context, folderID string) ([]*File, error) {
	if folderID == "" {
		folderID = "root"
	}

	result, err := s.srv.Files.List().
		Context(ctx).
		Q(fmt.Sprintf("'%s' in parents and trashed=false", folderID)).
		Fields("files(id, name, mimeType, modifiedTime, size)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve files: %w", err)
	}

	var files []*File
	for _, f := range result.Files {
		file := &File{
			ID:           f.Id,
			Name:         f.Name,
			MimeType:     f.MimeType,
			ModifiedTime: f.ModifiedTime,
			Size:         f.Size,
		}
		if file.IsWorkbook() {
			files = append(files, file)
		}
	}

	return files, nil
}

// DownloadWorkbook writes the file as XLSX to w, exporting native Google Sheets
func (s *Service) DownloadWorkbook(ctx context.Context, fileID string, w io.Writer) error {
	meta, err := s.srv.Files.Get(fileID).Context(ctx).Fields("id, name, mimeType").Do()
	if err != nil {
		return fmt.Errorf("unable to stat drive file %s: %w", fileID, err)
	}

	var body io.ReadCloser
	if meta.MimeType == mimeGoogleSheet {
		resp, err := s.srv.Files.Export(fileID, mimeXLSX).Context(ctx).Download()
		if err != nil {
			return fmt.Errorf("unable to export sheet %s: %w", fileID, err)
		}
		body = resp.Body
	} else {
		resp, err := s.srv.Files.Get(fileID).Context(ctx).Download()
		if err != nil {
			return fmt.Errorf("unable to download file %s: %w", fileID, err)
		}
		body = resp.Body
	}
	defer body.Close()

	_, err = io.Copy(w, body)
	return err
}

// DownloadWorkbookTo saves the workbook at destPath
func (s *Service) DownloadWorkbookTo(ctx context.Context, fileID, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed creating directory for %s: %w", destPath, err)
	}
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer out.Close()

	return s.DownloadWorkbook(ctx, fileID, out)
}

// FindFolderByPath resolves a slash separated folder path to its id
func (s *Service) FindFolderByPath(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "root", nil
	}

	currentID := "root"
	for _, folder := range strings.Split(path, "/") {
		if folder == "" {
			continue
		}

		result, err := s.srv.Files.List().
			Context(ctx).
			Q(fmt.Sprintf("'%s' in parents and name='%s' and mimeType='%s' and trashed=false",
				currentID, folder, mimeFolder)).
			Fields("files(id, name)").
			Do()
		if err != nil {
			return "", fmt.Errorf("error finding folder %s: %w", folder, err)
		}

		if len(result.Files) == 0 {
			return "", fmt.Errorf("folder not found: %s", folder)
		}

		currentID = result.Files[0].Id
	}

	return currentID, nil
}
