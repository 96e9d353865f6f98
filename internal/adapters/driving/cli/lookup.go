package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epz-tools/udiscan/internal/core/domain"
	"github.com/epz-tools/udiscan/internal/core/ports/driving"
)

var lookupJSON bool

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Cross-reference catalog identifiers",
	Long: `Resolves between GTINs and article reference numbers using the
configured catalog.`,
}

var lookupRefCmd = &cobra.Command{
	Use:   "ref [gtin]",
	Short: "Find the article reference for a GTIN",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookupRef,
}

var lookupGTINCmd = &cobra.Command{
	Use:   "gtin [reference]",
	Short: "Find the GTIN for an article reference",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookupGTIN,
}

func init() {
	lookupCmd.PersistentFlags().BoolVar(&lookupJSON, "json", false, "output result as JSON")
	lookupCmd.AddCommand(lookupRefCmd)
	lookupCmd.AddCommand(lookupGTINCmd)
	rootCmd.AddCommand(lookupCmd)
}

func runLookupRef(cmd *cobra.Command, args []string) error {
	lookup, err := requireLookup(cmd)
	if err != nil {
		return err
	}

	reference := lookup.Reference(args[0])
	if reference == "" {
		return fmt.Errorf("%w: no reference for %s", domain.ErrNotFound, args[0])
	}
	return outputLookup(cmd, args[0], "reference", reference)
}

func runLookupGTIN(cmd *cobra.Command, args []string) error {
	lookup, err := requireLookup(cmd)
	if err != nil {
		return err
	}

	gtin := lookup.Identifier(args[0])
	if gtin == "" {
		return fmt.Errorf("%w: no GTIN for %s", domain.ErrNotFound, args[0])
	}
	return outputLookup(cmd, args[0], "gtin", gtin)
}

func requireLookup(cmd *cobra.Command) (driving.LookupService, error) {
	if err := ensureLookupService(cmd.Context()); err != nil {
		return nil, err
	}
	if lookupService == nil {
		return nil, fmt.Errorf("%w: run 'udiscan catalog set <path>' first", domain.ErrNoCatalog)
	}
	return lookupService, nil
}

func outputLookup(cmd *cobra.Command, query, field, value string) error {
	if lookupJSON {
		data, err := json.MarshalIndent(map[string]string{
			"query": query,
			field:   value,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(value)
	return nil
}
