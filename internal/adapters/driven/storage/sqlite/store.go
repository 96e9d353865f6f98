package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/epz-tools/udiscan/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/epz-tools/udiscan/internal/core/domain"
	"github.com/epz-tools/udiscan/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Store is the SQLite-backed record store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a record store at the specified data directory.
// If dataDir is empty, defaults to ~/.udiscan/data/udiscan.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".udiscan", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "udiscan.db")

	// WAL mode for better concurrency with the watch command.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate applies every embedded SQL file in lexical order.
func (s *Store) migrate(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	var names []string
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".sql" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}

// SaveSnapshot stores the raw catalog document and its flattened
// records, replacing any earlier snapshot with the same name.
func (s *Store) SaveSnapshot(ctx context.Context, name string, raw []byte, records []domain.CatalogRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete old snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (name, raw, imported_at) VALUES (?, ?, ?)`,
		name, raw, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	for _, record := range records {
		id := record.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_records (id, snapshot_name, position, gtin, reference)
			 VALUES (?, ?, ?, ?, ?)`,
			id, name, record.Position, record.GTIN, record.Reference,
		); err != nil {
			return fmt.Errorf("insert record %d: %w", record.Position, err)
		}
	}

	return tx.Commit()
}

// Records returns the flattened records of the named snapshot in
// document order.
func (s *Store) Records(ctx context.Context, name string) ([]domain.CatalogRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, position, gtin, reference
		 FROM catalog_records WHERE snapshot_name = ? ORDER BY position`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.CatalogRecord
	for rows.Next() {
		var record domain.CatalogRecord
		if err := rows.Scan(&record.ID, &record.Position, &record.GTIN, &record.Reference); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// SaveDecode appends one decode result to the history.
func (s *Store) SaveDecode(ctx context.Context, entry *domain.DecodeEntry) error {
	if entry == nil {
		return domain.ErrInvalidInput
	}

	id := entry.ID
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decode_history (id, barcode, gtin, expiry, serial, valid, reference, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, entry.Barcode, entry.GTIN, entry.Expiry, entry.Serial, entry.Valid, entry.Reference, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert decode entry: %w", err)
	}
	return nil
}

// RecentDecodes returns up to limit history entries, newest first.
func (s *Store) RecentDecodes(ctx context.Context, limit int) ([]domain.DecodeEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, barcode, gtin, expiry, serial, valid, reference, created_at
		 FROM decode_history ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []domain.DecodeEntry
	for rows.Next() {
		var entry domain.DecodeEntry
		if err := rows.Scan(
			&entry.ID, &entry.Barcode, &entry.GTIN, &entry.Expiry,
			&entry.Serial, &entry.Valid, &entry.Reference, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Path returns the location of the database file.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
