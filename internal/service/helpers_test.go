package service

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/officepantry/internal/db"
	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/filestore"
)

var testNow = time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })
	return d
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// stubFileStore is a minimal in-memory filestore.FileStore for tests.
type stubFileStore struct {
	saved   map[string][]byte
	saveErr error
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{saved: make(map[string][]byte)}
}

func (s *stubFileStore) Save(_ context.Context, prefix, _ string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, _ := io.ReadAll(r)
	key := prefix + "_" + strings.Repeat("0", len(s.saved)+1) + ".xlsx"
	s.saved[key] = data
	return key, nil
}

func (s *stubFileStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.saved[key]
	if !ok {
		return nil, "", filestore.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), filestore.ContentTypeXLSX, nil
}

func (s *stubFileStore) Delete(_ context.Context, key string) error {
	delete(s.saved, key)
	return nil
}

func (s *stubFileStore) List(_ context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.saved))
	for k := range s.saved {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}

func product(name, category, price string, stock int, status domain.ProductStatus) *domain.Product {
	return &domain.Product{
		Name:         name,
		Category:     category,
		CurrentPrice: money(price),
		CostPrice:    money("1.00"),
		Stock:        stock,
		Status:       status,
		Icon:         domain.ItemIcon(""),
	}
}
