package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyBarcode indicates an empty barcode was supplied.
	ErrEmptyBarcode = errors.New("empty barcode")

	// ErrBarcodeTooShort indicates the barcode is below the minimum
	// decodable length.
	ErrBarcodeTooShort = errors.New("barcode too short")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCatalogLoad indicates the catalog file could not be read or
	// parsed. Lookups against a catalog that failed to load return
	// empty results rather than resurfacing this error.
	ErrCatalogLoad = errors.New("catalog load failed")

	// ErrNoCatalog indicates no catalog path has been configured.
	ErrNoCatalog = errors.New("no catalog configured")
)
