package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/epz-tools/udiscan/internal/core/domain"
	"github.com/epz-tools/udiscan/internal/core/ports/driven"
	"github.com/epz-tools/udiscan/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.CatalogSource = (*Loader)(nil)

// Loader reads one catalog document from a JSON file.
type Loader struct{}

// NewLoader creates a catalog file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the catalog at path. A missing file or
// malformed JSON is a hard failure wrapped as domain.ErrCatalogLoad.
func (l *Loader) Load(ctx context.Context, path string) (any, error) {
	_, doc, err := l.LoadRaw(ctx, path)
	return doc, err
}

// LoadRaw is like Load but also returns the raw file contents, for
// callers that persist the document alongside the parsed form.
func (l *Loader) LoadRaw(_ context.Context, path string) ([]byte, any, error) {
	logger.Info("catalog: reading %s", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrCatalogLoad, err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: invalid JSON in %s: %v", domain.ErrCatalogLoad, path, err)
	}

	logger.Debug("catalog: parsed %d bytes", len(raw))
	return raw, doc, nil
}
