package domain

import "time"

// RootElement is one catalog record as decoded from JSON. The catalog
// has no enforced schema, so records are traversed as generic trees.
type RootElement = any

// CatalogStats summarises a built catalog index.
type CatalogStats struct {
	// Roots is the number of root elements found in the document.
	Roots int `json:"roots"`

	// Identifiers is the number of records with a directly
	// extractable GTIN.
	Identifiers int `json:"identifiers"`

	// References is the number of records with a directly
	// extractable reference number.
	References int `json:"references"`

	// Terms is the number of distinct tokens in the term index.
	Terms int `json:"terms"`
}

// CatalogRecord is the flattened form of one root element, as persisted
// by the import pipeline.
type CatalogRecord struct {
	// ID is a generated unique record ID.
	ID string

	// Position is the root element's position in the source document.
	Position int

	// GTIN is the directly extracted identifier, possibly empty.
	GTIN string

	// Reference is the directly extracted reference number, possibly empty.
	Reference string
}

// DecodeEntry is one decode result as recorded in the local history.
type DecodeEntry struct {
	ID        string
	Barcode   string
	GTIN      string
	Expiry    string
	Serial    string
	Valid     bool
	Reference string
	CreatedAt time.Time
}

// Article is one row of the downstream article table targeted by the
// backfill pipeline.
type Article struct {
	// ID is the article's primary key.
	ID int64

	// Reference is the human-facing reference number.
	Reference string

	// GTIN is the product identifier column, empty until backfilled.
	GTIN string
}
