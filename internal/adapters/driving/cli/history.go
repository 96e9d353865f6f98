package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit    int
	historySnapshot string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent decode results",
	Long: `Lists recent decode results, newest first. With --snapshot, lists the
records of an imported catalog snapshot instead.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	historyCmd.Flags().StringVar(&historySnapshot, "snapshot", "", "list the records of this imported snapshot")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if err := ensureRecordStore(""); err != nil {
		return err
	}

	if historySnapshot != "" {
		return runHistorySnapshot(cmd, historySnapshot)
	}

	limit := historyLimit
	if !cmd.Flags().Changed("limit") {
		if err := ensureConfigStore(); err != nil {
			return err
		}
		if configured := configStore.GetInt(configKeyHistoryLimit); configured > 0 {
			limit = configured
		}
	}

	entries, err := recordStore.RecentDecodes(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No decodes recorded.")
		return nil
	}

	for _, entry := range entries {
		validity := "valid"
		if !entry.Valid {
			validity = "INVALID"
		}

		cmd.Printf("%s  %-20s  %s", entry.CreatedAt.Format("2006-01-02 15:04:05"), entry.GTIN, validity)
		if entry.Reference != "" {
			cmd.Printf("  %s", entry.Reference)
		}
		cmd.Println()
	}
	return nil
}

func runHistorySnapshot(cmd *cobra.Command, name string) error {
	records, err := recordStore.Records(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("reading snapshot %q: %w", name, err)
	}

	if len(records) == 0 {
		cmd.Printf("No records for snapshot %s.\n", name)
		return nil
	}

	for _, record := range records {
		cmd.Printf("%4d  %-20s  %s\n", record.Position, record.GTIN, record.Reference)
	}
	return nil
}
