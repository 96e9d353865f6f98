package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the article catalog",
	Long: `Configure which JSON article catalog is used for lookups. The
configured path is remembered across runs.`,
	RunE: runCatalogShow,
}

var catalogSetCmd = &cobra.Command{
	Use:   "set [path]",
	Short: "Set the catalog file path",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogSet,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured catalog path",
	RunE:  runCatalogShow,
}

var catalogUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Forget the configured catalog path",
	RunE:  runCatalogUnset,
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog index statistics",
	RunE:  runCatalogStats,
}

func init() {
	catalogCmd.AddCommand(catalogSetCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogUnsetCmd)
	catalogCmd.AddCommand(catalogStatsCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogSet(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	// Reject unreadable or malformed catalogs before remembering them.
	if _, err := catalogSource.Load(cmd.Context(), path); err != nil {
		return err
	}

	if err := ensureConfigStore(); err != nil {
		return err
	}
	if err := configStore.Set(configKeyCatalogPath, path); err != nil {
		return fmt.Errorf("saving catalog path: %w", err)
	}

	cmd.Printf("Catalog set to %s\n", path)
	return nil
}

func runCatalogShow(cmd *cobra.Command, _ []string) error {
	if err := ensureConfigStore(); err != nil {
		return err
	}

	path := configStore.GetString(configKeyCatalogPath)
	if path == "" {
		cmd.Println("No catalog configured.")
		return nil
	}
	cmd.Println(path)
	return nil
}

func runCatalogUnset(cmd *cobra.Command, _ []string) error {
	if err := ensureConfigStore(); err != nil {
		return err
	}
	if err := configStore.Delete(configKeyCatalogPath); err != nil {
		return fmt.Errorf("clearing catalog path: %w", err)
	}

	cmd.Println("Catalog path cleared.")
	return nil
}

func runCatalogStats(cmd *cobra.Command, _ []string) error {
	lookup, err := requireLookup(cmd)
	if err != nil {
		return err
	}

	stats := lookup.Stats()
	cmd.Printf("Roots:       %d\n", stats.Roots)
	cmd.Printf("Identifiers: %d\n", stats.Identifiers)
	cmd.Printf("References:  %d\n", stats.References)
	cmd.Printf("Terms:       %d\n", stats.Terms)
	return nil
}
