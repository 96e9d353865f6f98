package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	catalogfile "github.com/epz-tools/udiscan/internal/adapters/driven/catalog/file"
	"github.com/epz-tools/udiscan/internal/adapters/driving/tui"
	"github.com/epz-tools/udiscan/internal/core/domain"
	"github.com/epz-tools/udiscan/internal/core/ports/driving"
	"github.com/epz-tools/udiscan/internal/core/services"
	"github.com/epz-tools/udiscan/internal/logger"
)

var watchCatalogPath string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Resolve terms interactively, reloading the catalog on change",
	Long: `Opens an interactive prompt that resolves barcodes and catalog terms.
The catalog file is watched for changes and the index is rebuilt
whenever it is rewritten; the prompt keeps working throughout.

Controls:
  Enter - resolve the entered term
  Esc   - quit`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchCatalogPath, "catalog", "", "catalog file to watch (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	path := watchCatalogPath
	if path == "" {
		if err := ensureConfigStore(); err != nil {
			return err
		}
		path = configStore.GetString(configKeyCatalogPath)
	}
	if path == "" {
		return fmt.Errorf("%w: pass --catalog or run 'udiscan catalog set'", domain.ErrNoCatalog)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	lookup, err := buildWatchLookup(ctx, path)
	if err != nil {
		return err
	}

	watcher, err := catalogfile.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("watching catalog: %w", err)
	}
	defer watcher.Close()

	ensureDecodeService()
	app := tui.NewApp(decodeService, lookup, path)
	program := tea.NewProgram(app,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	go func() {
		err := watcher.Run(ctx, func() {
			program.Send(reloadMsg(ctx, path))
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("watcher stopped: %v", err)
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

// reloadMsg rebuilds the catalog index after a file change and wraps
// the outcome as a message for the running app.
func reloadMsg(ctx context.Context, path string) tea.Msg {
	fresh, err := buildWatchLookup(ctx, path)
	if err != nil {
		logger.Warn("catalog reload failed: %v", err)
		return tui.ReloadFailed{Err: err}
	}
	logger.Info("catalog reloaded from %s", path)
	return tui.CatalogReloaded{Lookup: fresh}
}

func buildWatchLookup(ctx context.Context, path string) (driving.LookupService, error) {
	doc, err := catalogSource.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return services.NewSearcher(services.BuildIndex(doc)), nil
}
