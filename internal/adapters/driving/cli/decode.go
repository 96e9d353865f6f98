package cli

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/epz-tools/udiscan/internal/core/domain"
	"github.com/epz-tools/udiscan/internal/logger"
)

var (
	decodeJSON      bool
	decodeCopy      bool
	decodeNoCatalog bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [barcode]",
	Short: "Decode and validate a scanned barcode",
	Long: `Decodes a scanned barcode into GTIN, expiry date and serial number,
validates the GTIN checksum and resolves the article reference from
the configured catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeJSON, "json", false, "output result as JSON")
	decodeCmd.Flags().BoolVar(&decodeCopy, "copy", false, "copy the resolved reference (or GTIN) to the clipboard")
	decodeCmd.Flags().BoolVar(&decodeNoCatalog, "no-catalog", false, "skip the catalog lookup")
	rootCmd.AddCommand(decodeCmd)
}

type decodeOutput struct {
	domain.DecodedBarcode
	Reference string `json:"reference,omitempty"`
}

func runDecode(cmd *cobra.Command, args []string) error {
	barcode := args[0]
	ensureDecodeService()

	decoded, err := decodeService.Decode(barcode)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	reference := ""
	if !decodeNoCatalog {
		if err := ensureLookupService(cmd.Context()); err != nil {
			logger.Warn("catalog unavailable: %v", err)
		} else if lookupService != nil {
			reference = lookupService.Reference(decoded.GTIN)
		}
	}

	recordDecode(cmd, barcode, decoded, reference)

	if decodeCopy {
		text := reference
		if text == "" {
			text = decoded.GTIN
		}
		if err := clipboard.WriteAll(text); err != nil {
			logger.Warn("clipboard copy failed: %v", err)
		}
	}

	out := decodeOutput{DecodedBarcode: decoded, Reference: reference}
	if decodeJSON {
		return outputDecodeJSON(cmd, out)
	}
	return outputDecodeText(cmd, out)
}

// recordDecode appends the result to the local history. Failures are
// logged but never fail the decode itself.
func recordDecode(cmd *cobra.Command, barcode string, decoded domain.DecodedBarcode, reference string) {
	if err := ensureRecordStore(""); err != nil {
		logger.Debug("history unavailable: %v", err)
		return
	}

	entry := &domain.DecodeEntry{
		Barcode:   barcode,
		GTIN:      decoded.GTIN,
		Expiry:    decoded.Expiry,
		Serial:    decoded.Serial,
		Valid:     decoded.Valid,
		Reference: reference,
	}
	if err := recordStore.SaveDecode(cmd.Context(), entry); err != nil {
		logger.Debug("recording decode failed: %v", err)
	}
}

func outputDecodeJSON(cmd *cobra.Command, out decodeOutput) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputDecodeText(cmd *cobra.Command, out decodeOutput) error {
	cmd.Printf("GTIN:      %s\n", out.GTIN)
	if out.Expiry != "" {
		cmd.Printf("Expiry:    %s\n", out.Expiry)
	}
	if out.Serial != "" {
		cmd.Printf("Serial:    %s\n", out.Serial)
	}

	validity := "valid"
	if !out.Valid {
		validity = "INVALID"
	}
	cmd.Printf("Checksum:  %s\n", validity)

	if out.Reference != "" {
		cmd.Printf("Reference: %s\n", out.Reference)
	}
	return nil
}
