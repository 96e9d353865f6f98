package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epz-tools/udiscan/internal/core/services"
)

var (
	backfillDSN    string
	backfillDryRun bool
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Backfill article GTINs in the central database",
	Long: `Walks the article table in the central PostgreSQL database, resolves
each reference number against the configured catalog and writes the
matching GTIN back. Articles whose GTIN fails checksum validation are
skipped.`,
	RunE: runBackfill,
}

func init() {
	backfillCmd.Flags().StringVar(&backfillDSN, "dsn", "", "PostgreSQL connection string")
	backfillCmd.Flags().BoolVar(&backfillDryRun, "dry-run", false, "report changes without writing them")
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, _ []string) error {
	if importService == nil {
		lookup, err := requireLookup(cmd)
		if err != nil {
			return err
		}

		dsn := backfillDSN
		if dsn == "" {
			if err := ensureConfigStore(); err != nil {
				return err
			}
			dsn = configStore.GetString(configKeyPostgresDSN)
		}
		if dsn == "" {
			return errors.New("no database configured, pass --dsn or set postgres.dsn")
		}

		articles, err := newArticleStore(dsn)
		if err != nil {
			return err
		}
		defer articles.Close()

		importService = services.NewImporter(nil, articles, lookup)
	}

	summary, err := importService.Backfill(cmd.Context(), backfillDryRun)
	if err != nil {
		return fmt.Errorf("backfill failed: %w", err)
	}

	verb := "updated"
	if backfillDryRun {
		verb = "would update"
	}
	cmd.Printf("Scanned %d articles: %s %d, skipped %d\n", summary.Scanned, verb, summary.Updated, summary.Skipped)
	return nil
}
