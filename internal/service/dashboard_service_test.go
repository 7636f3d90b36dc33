package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/filestore"
	"github.com/vbonduro/officepantry/internal/store"
)

type dashboardFixture struct {
	svc      *DashboardService
	files    *stubFileStore
	products *store.ProductStore
	ids      map[string]int64
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()
	d := openTestDB(t)
	products := store.NewProductStore(d)
	entries := store.NewEntryStore(d)
	loadReportRecords(t, entries)

	ids := make(map[string]int64)
	for _, p := range []*domain.Product{
		product("Tea Bags", domain.CategoryBeverages, "2.50", 45, domain.StatusActive),
		product("Cookies", domain.CategorySnacks, "4.50", 12, domain.StatusLowStock),
		product("Milk", domain.CategoryOther, "2.00", 5, domain.StatusLowStock),
		product("Chips", domain.CategorySnacks, "2.75", 0, domain.StatusInactive),
	} {
		created, err := products.Create(context.Background(), p)
		require.NoError(t, err)
		ids[p.Name] = created.ID
	}

	files := newStubFileStore()
	svc := NewDashboardService(products, entries, store.NewPriceUpdateStore(d), files, Thresholds{Low: 20, Critical: 10}, discardLogger())
	svc.now = fixedClock
	return &dashboardFixture{svc: svc, files: files, products: products, ids: ids}
}

func TestThresholds(t *testing.T) {
	th := Thresholds{Low: 20, Critical: 10}
	assert.Equal(t, LevelCritical, th.Level(9))
	assert.Equal(t, LevelWarning, th.Level(10))
	assert.Equal(t, LevelWarning, th.Level(19))
	assert.Equal(t, LevelOK, th.Level(20))

	assert.Equal(t, domain.StatusLowStock, th.Status(domain.StatusActive, 19))
	assert.Equal(t, domain.StatusActive, th.Status(domain.StatusLowStock, 20))
	assert.Equal(t, domain.StatusInactive, th.Status(domain.StatusInactive, 100))
}

func TestDashboardSnapshot(t *testing.T) {
	f := newDashboardFixture(t)

	snap, err := f.svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 62, snap.TotalStock)
	assert.Len(t, snap.Products, 4)
	require.Len(t, snap.Alerts, 2)
	assert.Equal(t, "Cookies", snap.Alerts[0].Name)
	assert.Equal(t, LevelWarning, snap.Alerts[0].Level)
	assert.Equal(t, "Milk", snap.Alerts[1].Name)
	assert.Equal(t, LevelCritical, snap.Alerts[1].Level)
	assert.True(t, testNow.Equal(snap.RefreshedAt))

	again, err := f.svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, snap, again)
}

func TestDashboardRestock(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	p, err := f.svc.Restock(ctx, f.ids["Milk"])
	require.NoError(t, err)
	assert.Equal(t, 55, p.Stock)
	assert.Equal(t, domain.StatusActive, p.Status)

	stored, err := f.products.GetByID(ctx, f.ids["Milk"])
	require.NoError(t, err)
	assert.Equal(t, 55, stored.Stock)

	snap, err := f.svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, "Cookies", snap.Alerts[0].Name)

	chips, err := f.svc.Restock(ctx, f.ids["Chips"])
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, chips.Status)

	_, err = f.svc.Restock(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboardBackup(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	key, err := f.svc.Backup(ctx)
	require.NoError(t, err)

	keys, err := f.svc.Backups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{key}, keys)

	rc, _, err := f.svc.OpenBackup(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("Consumption")
	require.NoError(t, err)
	assert.Len(t, rows, 11)
}

func TestDashboardBackupSaveError(t *testing.T) {
	f := newDashboardFixture(t)
	f.files.saveErr = errors.New("disk full")

	_, err := f.svc.Backup(context.Background())
	assert.ErrorContains(t, err, "disk full")
}

func TestDashboardPruneBackupsKeepsNewest(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	var keys []string
	for i := 0; i < 4; i++ {
		key, err := f.svc.Backup(ctx)
		require.NoError(t, err)
		keys = append(keys, key)
	}

	removed, err := f.svc.PruneBackups(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	left, err := f.svc.Backups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{keys[3], keys[2]}, left)

	_, _, err = f.svc.OpenBackup(ctx, keys[0])
	assert.ErrorIs(t, err, filestore.ErrNotFound)

	removed, err = f.svc.PruneBackups(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, removed)
	removed, err = f.svc.PruneBackups(ctx, 5)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
