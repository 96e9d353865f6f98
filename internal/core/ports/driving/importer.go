package driving

import "context"

// BackfillSummary reports the outcome of one backfill run.
type BackfillSummary struct {
	// Scanned is the number of article rows examined.
	Scanned int

	// Updated is the number of rows that received a GTIN.
	Updated int

	// Skipped is the number of rows left untouched because no valid
	// GTIN could be resolved for their reference number.
	Skipped int
}

// ImportService runs the batch pipelines around the catalog: snapshot
// imports into the local store and GTIN backfill into the article
// table.
type ImportService interface {
	// Import flattens the given catalog document and persists it as
	// a named snapshot. Returns the number of records stored.
	Import(ctx context.Context, name string, raw []byte, doc any) (int, error)

	// Backfill resolves a GTIN for every article reference, validates
	// its check digit, and updates the row. With dryRun set, rows are
	// resolved and counted but not written.
	Backfill(ctx context.Context, dryRun bool) (BackfillSummary, error)
}
