package domain

// MinBarcodeLength is the shortest raw barcode that can still carry a
// full product identifier. The GTIN occupies positions 2..15 of the
// scanned string, so anything shorter is rejected outright.
const MinBarcodeLength = 16

// DecodedBarcode holds the fields extracted from one scanned barcode.
// A value is created once per decode and never mutated afterwards.
type DecodedBarcode struct {
	// GTIN is the 14-character product identifier sliced from the
	// barcode. It is reported even when the check digit did not
	// verify; Valid carries the confidence.
	GTIN string `json:"gtin"`

	// Expiry is the expiry date formatted as YYYY-MM-DD, or empty
	// when the barcode carried no (or an invalid) date fragment.
	Expiry string `json:"expiry"`

	// Serial is the serial or lot number fragment, possibly empty.
	Serial string `json:"serial"`

	// Valid reports whether the GTIN check digit verified under any
	// of the supported checksum algorithms.
	Valid bool `json:"valid"`
}
