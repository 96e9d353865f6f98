package driven

import "context"

// CatalogSource loads one catalog document into memory.
// Backed by a JSON file on disk.
type CatalogSource interface {
	// Load reads and parses the document at path. A missing file or
	// malformed JSON is a hard failure reported at load time.
	Load(ctx context.Context, path string) (any, error)
}
