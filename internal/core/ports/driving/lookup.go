package driving

import "github.com/epz-tools/udiscan/internal/core/domain"

// LookupService cross-references identifiers and reference numbers
// against a loaded catalog. All lookups return "" for "not found";
// a service without a catalog behaves as an always-empty catalog.
type LookupService interface {
	// Reference resolves the reference number for a GTIN.
	Reference(gtin string) string

	// Identifier resolves the GTIN for a reference number.
	Identifier(ref string) string

	// Stats reports counts for the built index.
	Stats() domain.CatalogStats
}
