package driving

import "github.com/epz-tools/udiscan/internal/core/domain"

// DecodeService decodes raw barcode strings into their fields.
type DecodeService interface {
	// Decode slices one raw barcode into identifier, expiry and
	// serial. Only an empty or too-short barcode is a hard failure;
	// every downstream extraction problem degrades to empty fields
	// and Valid=false on the result.
	Decode(barcode string) (domain.DecodedBarcode, error)
}
