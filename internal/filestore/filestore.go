// Package filestore keeps generated files, such as backup workbooks, under
// opaque storage keys.
package filestore

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("file not found")

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv"
)

type FileStore interface {
	Save(ctx context.Context, prefix, contentType string, r io.Reader) (storageKey string, err error)
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
	List(ctx context.Context) ([]string, error)
}
