package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	configfile "github.com/epz-tools/udiscan/internal/adapters/driven/config/file"
	"github.com/epz-tools/udiscan/internal/core/domain"
	"github.com/epz-tools/udiscan/internal/core/ports/driving"
	"github.com/epz-tools/udiscan/internal/core/services"
)

// setupTestServices wires every service to a mock so no command
// touches the home directory. The returned cleanup restores the
// previous wiring.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	oldDecode := decodeService
	oldLookup := lookupService
	oldImport := importService
	oldConfig := configStore
	oldRecord := recordStore
	oldSource := catalogSource

	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	decodeService = services.NewDecoder()
	lookupService = &mockLookup{
		refs:  map[string]string{"04006381333931": "REF-100"},
		gtins: map[string]string{"REF-100": "04006381333931"},
		stats: domain.CatalogStats{Roots: 2, Identifiers: 2, References: 2, Terms: 12},
	}
	importService = nil
	configStore = store
	recordStore = &mockRecordStore{}
	catalogSource = &mockCatalogSource{doc: []any{}}

	return func() {
		decodeService = oldDecode
		lookupService = oldLookup
		importService = oldImport
		configStore = oldConfig
		recordStore = oldRecord
		catalogSource = oldSource
	}
}

type mockLookup struct {
	refs  map[string]string
	gtins map[string]string
	stats domain.CatalogStats
}

func (m *mockLookup) Reference(gtin string) string { return m.refs[gtin] }
func (m *mockLookup) Identifier(ref string) string { return m.gtins[ref] }
func (m *mockLookup) Stats() domain.CatalogStats   { return m.stats }

type mockRecordStore struct {
	snapshots map[string][]domain.CatalogRecord
	decodes   []domain.DecodeEntry
	saveErr   error
}

func (m *mockRecordStore) SaveSnapshot(_ context.Context, name string, _ []byte, records []domain.CatalogRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.snapshots == nil {
		m.snapshots = make(map[string][]domain.CatalogRecord)
	}
	m.snapshots[name] = records
	return nil
}

func (m *mockRecordStore) Records(_ context.Context, name string) ([]domain.CatalogRecord, error) {
	return m.snapshots[name], nil
}

func (m *mockRecordStore) SaveDecode(_ context.Context, entry *domain.DecodeEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.decodes = append(m.decodes, *entry)
	return nil
}

func (m *mockRecordStore) RecentDecodes(_ context.Context, limit int) ([]domain.DecodeEntry, error) {
	if limit > 0 && limit < len(m.decodes) {
		return m.decodes[:limit], nil
	}
	return m.decodes, nil
}

func (m *mockRecordStore) Close() error { return nil }

type mockCatalogSource struct {
	doc any
	err error
}

func (m *mockCatalogSource) Load(_ context.Context, _ string) (any, error) {
	return m.doc, m.err
}

type mockImportService struct {
	count    int
	summary  driving.BackfillSummary
	err      error
	lastName string
	dryRun   bool
}

func (m *mockImportService) Import(_ context.Context, name string, _ []byte, _ any) (int, error) {
	m.lastName = name
	return m.count, m.err
}

func (m *mockImportService) Backfill(_ context.Context, dryRun bool) (driving.BackfillSummary, error) {
	m.dryRun = dryRun
	return m.summary, m.err
}

var errMockFailure = errors.New("mock failure")
