package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	catalogfile "github.com/epz-tools/udiscan/internal/adapters/driven/catalog/file"
	"github.com/epz-tools/udiscan/internal/core/services"
)

var importDataDir string

// loadCatalogRaw is a hook so tests can avoid the filesystem.
var loadCatalogRaw = func(ctx context.Context, path string) ([]byte, any, error) {
	return catalogfile.NewLoader().LoadRaw(ctx, path)
}

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import a catalog file into the local store",
	Long: `Reads a JSON catalog file, extracts its GTIN and reference pairs and
persists them together with the raw document as a named snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDataDir, "data-dir", "", "data directory (default ~/.udiscan/data)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	raw, doc, err := loadCatalogRaw(cmd.Context(), path)
	if err != nil {
		return err
	}

	if err := ensureRecordStore(importDataDir); err != nil {
		return err
	}
	if importService == nil {
		importService = services.NewImporter(recordStore, nil, nil)
	}

	name := filepath.Base(path)
	count, err := importService.Import(cmd.Context(), name, raw, doc)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d records from %s\n", count, name)
	return nil
}
