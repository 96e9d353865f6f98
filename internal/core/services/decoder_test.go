package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epz-tools/udiscan/internal/core/domain"
)

// validGTIN14 verifies under the GTIN-13 scheme after dropping the
// leading packaging indicator.
const validGTIN14 = "04006381333931"

// djoGTIN14 carries the DJO prefix at positions 2..4 and verifies
// under the digit sum scheme (digit sum of 0088812345678 is 60, 6).
const djoGTIN14 = "00888123456786"

func TestDecode_EmptyBarcode(t *testing.T) {
	d := NewDecoder()

	_, err := d.Decode("")
	assert.ErrorIs(t, err, domain.ErrEmptyBarcode)
}

func TestDecode_TooShort(t *testing.T) {
	d := NewDecoder()

	_, err := d.Decode("123456789012345") // 15 chars
	assert.ErrorIs(t, err, domain.ErrBarcodeTooShort)
}

func TestDecode_MinimalStandardBarcode(t *testing.T) {
	d := NewDecoder()

	result, err := d.Decode("01" + validGTIN14)
	require.NoError(t, err)

	assert.Equal(t, validGTIN14, result.GTIN)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Expiry)
	assert.Empty(t, result.Serial)
}

func TestDecode_StandardLayout(t *testing.T) {
	d := NewDecoder()

	// 01 | GTIN-14 | 17 | YYMMDD | 10 | serial
	barcode := "01" + validGTIN14 + "17" + "230228" + "10" + "SER123"

	result, err := d.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, validGTIN14, result.GTIN)
	assert.True(t, result.Valid)
	assert.Equal(t, "2023-02-28", result.Expiry)
	assert.Equal(t, "SER123", result.Serial)
}

func TestDecode_StandardLayout_InvalidDateDegrades(t *testing.T) {
	d := NewDecoder()

	barcode := "01" + validGTIN14 + "17" + "991301" + "10" + "SER123"

	result, err := d.Decode(barcode)
	require.NoError(t, err)

	assert.Empty(t, result.Expiry)
	assert.Equal(t, "SER123", result.Serial)
}

func TestDecode_DJOLayout_Short(t *testing.T) {
	d := NewDecoder()

	// Short form, 34 chars: serial at [18,26), expiry at [28,34).
	barcode := "01" + djoGTIN14 + "17" + "SERIAL01" + "XX" + "230228"
	require.Len(t, barcode, 34)

	result, err := d.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, djoGTIN14, result.GTIN)
	assert.True(t, result.Valid)
	assert.Equal(t, "SERIAL01", result.Serial)
	assert.Equal(t, "2023-02-28", result.Expiry)
}

func TestDecode_DJOLayout_Long(t *testing.T) {
	d := NewDecoder()

	// Long form, 35 chars: serial at [18,27), expiry at [29,35).
	barcode := "01" + djoGTIN14 + "17" + "SERIAL001" + "XX" + "230228"
	require.Len(t, barcode, 35)

	result, err := d.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, djoGTIN14, result.GTIN)
	assert.Equal(t, "SERIAL001", result.Serial)
	assert.Equal(t, "2023-02-28", result.Expiry)
}

func TestDecode_CorrectiveReparse(t *testing.T) {
	d := NewDecoder()

	clean := "01" + validGTIN14 + "17" + "230228" + "10" + "SER123"

	// A stray character injected at position 1 shifts every field.
	corrupted := clean[:1] + "Z" + clean[1:]

	result, err := d.Decode(corrupted)
	require.NoError(t, err)

	assert.Equal(t, validGTIN14, result.GTIN)
	assert.True(t, result.Valid)
	assert.Equal(t, "2023-02-28", result.Expiry)
	assert.Equal(t, "SER123", result.Serial)
}

func TestDecode_ReparseFailureKeepsOriginal(t *testing.T) {
	d := NewDecoder()

	// Nothing validates, with or without the corrective shift. The
	// original extraction is carried forward at lowered confidence.
	barcode := "01" + "12345678901230" + "17" + "230228" + "10"

	result, err := d.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, "12345678901230", result.GTIN)
	assert.False(t, result.Valid)
	assert.Equal(t, "2023-02-28", result.Expiry)
}

func TestDecode_Total(t *testing.T) {
	d := NewDecoder()

	// Any string of length >= 16 decodes to a well-formed result.
	inputs := []string{
		strings.Repeat("Z", 16),
		strings.Repeat("0", 16),
		strings.Repeat("8", 40),
		"01" + validGTIN14 + strings.Repeat("?", 30),
	}

	for _, input := range inputs {
		result, err := d.Decode(input)
		require.NoError(t, err)
		assert.Len(t, result.GTIN, 14)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, "bc", clamp("abcd", 1, 3))
	assert.Equal(t, "cd", clamp("abcd", 2, 10))
	assert.Equal(t, "", clamp("abcd", 5, 10))
	assert.Equal(t, "", clamp("abcd", 3, 2))
	assert.Equal(t, "abcd", clamp("abcd", -1, 99))
}
