package driven

import (
	"context"

	"github.com/epz-tools/udiscan/internal/core/domain"
)

// RecordStore persists catalog import snapshots and decode history.
// Backed by SQLite for local storage.
type RecordStore interface {
	// SaveSnapshot stores the raw catalog document under its file
	// name together with the flattened records extracted from it.
	// A snapshot replaces any earlier snapshot with the same name.
	SaveSnapshot(ctx context.Context, name string, raw []byte, records []domain.CatalogRecord) error

	// Records returns the flattened records of the named snapshot.
	Records(ctx context.Context, name string) ([]domain.CatalogRecord, error)

	// SaveDecode appends one decode result to the history.
	SaveDecode(ctx context.Context, entry *domain.DecodeEntry) error

	// RecentDecodes returns up to limit history entries, newest first.
	RecentDecodes(ctx context.Context, limit int) ([]domain.DecodeEntry, error)

	// Close releases the underlying database handle.
	Close() error
}
