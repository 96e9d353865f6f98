package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/epz-tools/udiscan/internal/core/domain"
	"github.com/epz-tools/udiscan/internal/core/ports/driven"
	"github.com/epz-tools/udiscan/internal/core/ports/driving"
	"github.com/epz-tools/udiscan/internal/logger"
)

// Ensure Importer implements the interface.
var _ driving.ImportService = (*Importer)(nil)

// Importer runs the batch pipelines around the catalog: flattening a
// document into the local record store and backfilling GTINs into the
// downstream article table.
type Importer struct {
	records  driven.RecordStore
	articles driven.ArticleStore
	lookup   driving.LookupService
	checks   *ChecksumValidator
}

// NewImporter creates an import service. Either store may be nil; the
// corresponding operation then fails with a configuration error.
func NewImporter(records driven.RecordStore, articles driven.ArticleStore, lookup driving.LookupService) *Importer {
	return &Importer{
		records:  records,
		articles: articles,
		lookup:   lookup,
		checks:   NewChecksumValidator(),
	}
}

// Import flattens the catalog document and persists it as a named
// snapshot together with the raw JSON.
func (im *Importer) Import(ctx context.Context, name string, raw []byte, doc any) (int, error) {
	if im.records == nil {
		return 0, errors.New("record store not configured")
	}

	idx := BuildIndex(doc)
	roots := idx.Roots()

	records := make([]domain.CatalogRecord, 0, len(roots))
	for pos, root := range roots {
		records = append(records, domain.CatalogRecord{
			ID:        uuid.New().String(),
			Position:  pos,
			GTIN:      extractDirect(root, markerUDI),
			Reference: extractDirect(root, markerRef),
		})
	}

	if err := im.records.SaveSnapshot(ctx, name, raw, records); err != nil {
		return 0, fmt.Errorf("save snapshot %q: %w", name, err)
	}

	logger.Info("import: stored %d records for snapshot %q", len(records), name)
	return len(records), nil
}

// Backfill resolves a GTIN for every article reference, checks its
// check digit, and writes it back. Rows whose reference resolves to
// nothing, or to a GTIN that fails validation, are skipped.
func (im *Importer) Backfill(ctx context.Context, dryRun bool) (driving.BackfillSummary, error) {
	var summary driving.BackfillSummary

	if im.articles == nil {
		return summary, errors.New("article store not configured")
	}
	if im.lookup == nil {
		return summary, errors.New("lookup service not configured")
	}

	articles, err := im.articles.Articles(ctx)
	if err != nil {
		return summary, fmt.Errorf("list articles: %w", err)
	}

	for _, article := range articles {
		summary.Scanned++

		gtin := im.lookup.Identifier(article.Reference)
		if gtin == "" || !im.checks.Validate(gtin) {
			logger.Debug("backfill: skipping article %d (ref %q)", article.ID, article.Reference)
			summary.Skipped++
			continue
		}

		if !dryRun {
			if err := im.articles.UpdateGTIN(ctx, article.ID, gtin); err != nil {
				return summary, fmt.Errorf("update article %d: %w", article.ID, err)
			}
		}
		logger.Info("backfill: article %d (ref %q) -> GTIN %s", article.ID, article.Reference, gtin)
		summary.Updated++
	}

	logger.Info("backfill: scanned=%d updated=%d skipped=%d (dry-run=%t)",
		summary.Scanned, summary.Updated, summary.Skipped, dryRun)
	return summary, nil
}
