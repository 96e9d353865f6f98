package services

import (
	"fmt"

	"github.com/epz-tools/udiscan/internal/core/domain"
	"github.com/epz-tools/udiscan/internal/core/ports/driving"
	"github.com/epz-tools/udiscan/internal/logger"
)

// Ensure Decoder implements the interface.
var _ driving.DecodeService = (*Decoder)(nil)

// Positional layout of the supported barcodes. The GTIN always sits at
// [2,16). Barcodes carrying the DJO manufacturer prefix at [4,7) place
// expiry and serial differently from the standard layout.
const (
	gtinStart = 2
	gtinEnd   = 16

	djoMarkerStart = 4
	djoMarkerEnd   = 7
	djoMarker      = "888"

	stdExpiryStart = 18
	stdExpiryEnd   = 24
	stdSerialStart = 26

	djoExpiryStartLong  = 29
	djoExpiryEndLong    = 35
	djoExpiryStartShort = 28
	djoExpiryEndShort   = 34
	djoSerialStart      = 18
	djoSerialEndLong    = 27
	djoSerialEndShort   = 26
)

// Decoder slices raw barcodes into their fields and validates the
// embedded check digit.
type Decoder struct {
	checks *ChecksumValidator
}

// NewDecoder creates a barcode decoder.
func NewDecoder() *Decoder {
	return &Decoder{checks: NewChecksumValidator()}
}

// Decode extracts GTIN, expiry date and serial number from a raw
// barcode. Only an empty or too-short input is a hard failure; all
// later extraction problems degrade to empty fields, with Valid
// reporting check digit confidence.
func (d *Decoder) Decode(barcode string) (domain.DecodedBarcode, error) {
	logger.Info("decode: processing %q", barcode)

	if barcode == "" {
		return domain.DecodedBarcode{}, domain.ErrEmptyBarcode
	}
	if len(barcode) < domain.MinBarcodeLength {
		return domain.DecodedBarcode{}, fmt.Errorf(
			"%w: length %d, need at least %d",
			domain.ErrBarcodeTooShort, len(barcode), domain.MinBarcodeLength)
	}

	gtin := clamp(barcode, gtinStart, gtinEnd)
	valid := d.checks.Validate(gtin)

	// One corrective retry: scanners occasionally inject a stray
	// character at position 1. Drop it and revalidate; adopt the
	// shifted barcode only when its check digit verifies.
	if !valid {
		alt := barcode[:1] + barcode[2:]
		altGTIN := clamp(alt, gtinStart, gtinEnd)
		if d.checks.Validate(altGTIN) {
			logger.Info("decode: corrective re-parse succeeded, GTIN %q", altGTIN)
			barcode = alt
			gtin = altGTIN
			valid = true
		} else {
			logger.Warn("decode: GTIN %q failed validation, keeping original", gtin)
		}
	}

	djo := clamp(barcode, djoMarkerStart, djoMarkerEnd) == djoMarker
	logger.Debug("decode: DJO layout: %t", djo)

	var expiry, serial string
	if djo {
		if len(barcode) > djoExpiryEndShort {
			expiry = clamp(barcode, djoExpiryStartLong, djoExpiryEndLong)
			serial = clamp(barcode, djoSerialStart, djoSerialEndLong)
		} else {
			expiry = clamp(barcode, djoExpiryStartShort, djoExpiryEndShort)
			serial = clamp(barcode, djoSerialStart, djoSerialEndShort)
		}
	} else {
		if len(barcode) > stdExpiryEnd {
			expiry = clamp(barcode, stdExpiryStart, stdExpiryEnd)
		}
		if len(barcode) > stdSerialStart {
			serial = barcode[stdSerialStart:]
		}
	}

	if expiry != "" {
		expiry = NormalizeDate(expiry)
	}

	result := domain.DecodedBarcode{
		GTIN:   gtin,
		Expiry: expiry,
		Serial: serial,
		Valid:  valid,
	}
	logger.Info("decode: GTIN=%s expiry=%s serial=%s valid=%t",
		result.GTIN, result.Expiry, result.Serial, result.Valid)
	return result, nil
}

// clamp returns s[from:to] with both bounds clamped into range, so an
// out-of-range slice degrades to a shorter (possibly empty) string
// instead of panicking.
func clamp(s string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(s) {
		to = len(s)
	}
	if from >= to {
		return ""
	}
	return s[from:to]
}
