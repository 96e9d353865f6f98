package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	catalogfile "github.com/epz-tools/udiscan/internal/adapters/driven/catalog/file"
	configfile "github.com/epz-tools/udiscan/internal/adapters/driven/config/file"
	"github.com/epz-tools/udiscan/internal/adapters/driven/storage/postgres"
	"github.com/epz-tools/udiscan/internal/adapters/driven/storage/sqlite"
	"github.com/epz-tools/udiscan/internal/core/ports/driven"
	"github.com/epz-tools/udiscan/internal/core/ports/driving"
	"github.com/epz-tools/udiscan/internal/core/services"
	"github.com/epz-tools/udiscan/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Config keys.
const (
	configKeyCatalogPath  = "catalog.path"
	configKeyPostgresDSN  = "postgres.dsn"
	configKeyHistoryLimit = "history.limit"
)

// Services used by the commands. Wired lazily on first use so tests
// can inject mocks before execution.
var (
	decodeService driving.DecodeService
	lookupService driving.LookupService
	importService driving.ImportService

	configStore driven.ConfigStore
	recordStore driven.RecordStore
)

// Factory hooks, replaceable in tests.
var (
	catalogSource driven.CatalogSource = catalogfile.NewLoader()

	newRecordStore = func(dataDir string) (driven.RecordStore, error) {
		return sqlite.NewStore(dataDir)
	}
	newArticleStore = func(dsn string) (driven.ArticleStore, error) {
		return postgres.NewArticleStore(dsn)
	}
)

var rootCmd = &cobra.Command{
	Use:   "udiscan",
	Short: "Decode UDI barcodes and cross-reference article catalogs",
	Long: `udiscan decodes scanned UDI barcodes into GTIN, expiry date and
serial number, validates the GTIN checksum and cross-references the
GTIN against a JSON article catalog.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.udiscan)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func ensureConfigStore() error {
	if configStore != nil {
		return nil
	}

	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	configStore = store
	return nil
}

func ensureDecodeService() {
	if decodeService == nil {
		decodeService = services.NewDecoder()
	}
}

// ensureLookupService builds the catalog index from the configured
// path. The service stays nil when no catalog is configured.
func ensureLookupService(ctx context.Context) error {
	if lookupService != nil {
		return nil
	}
	if err := ensureConfigStore(); err != nil {
		return err
	}

	path := configStore.GetString(configKeyCatalogPath)
	if path == "" {
		return nil
	}
	return loadCatalogIndex(ctx, path)
}

func loadCatalogIndex(ctx context.Context, path string) error {
	logger.Debug("loading catalog from %s", path)

	doc, err := catalogSource.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	lookupService = services.NewSearcher(services.BuildIndex(doc))
	return nil
}

func ensureRecordStore(dataDir string) error {
	if recordStore != nil {
		return nil
	}

	store, err := newRecordStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening record store: %w", err)
	}
	recordStore = store
	return nil
}
