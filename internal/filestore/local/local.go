package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vbonduro/officepantry/internal/filestore"
)

type LocalFileStore struct {
	basePath string
	now      func() time.Time
}

func NewLocalFileStore(basePath string) (*LocalFileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &LocalFileStore{basePath: basePath, now: time.Now}, nil
}

// Save writes r to a new file named after prefix and the current time. A
// partially written file is removed on error.
func (s *LocalFileStore) Save(ctx context.Context, prefix, contentType string, r io.Reader) (string, error) {
	filename := fmt.Sprintf("%s_%s%s", prefix, s.now().UTC().Format("20060102T150405.000000000"), contentTypeToExt(contentType))
	filePath := filepath.Join(s.basePath, filename)

	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after write error", "error", rerr)
		}
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after close error", "error", rerr)
		}
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return filename, nil
}

func (s *LocalFileStore) Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error) {
	filePath, err := s.safeJoin(storageKey)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", filestore.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return f, extToContentType(filePath), nil
}

func (s *LocalFileStore) Delete(ctx context.Context, storageKey string) error {
	filePath, err := s.safeJoin(storageKey)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return filestore.ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// List returns stored keys, newest first.
func (s *LocalFileStore) List(ctx context.Context) ([]string, error) {
	dirents, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read export directory: %w", err)
	}
	keys := make([]string, 0, len(dirents))
	for _, de := range dirents {
		if de.Type().IsRegular() {
			keys = append(keys, de.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}

// safeJoin resolves storageKey relative to basePath and rejects directory traversal.
func (s *LocalFileStore) safeJoin(storageKey string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, storageKey))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}

func contentTypeToExt(contentType string) string {
	switch contentType {
	case filestore.ContentTypeCSV:
		return ".csv"
	case filestore.ContentTypeXLSX:
		return ".xlsx"
	default:
		return ".bin"
	}
}

func extToContentType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		return filestore.ContentTypeCSV
	case ".xlsx":
		return filestore.ContentTypeXLSX
	default:
		return "application/octet-stream"
	}
}
