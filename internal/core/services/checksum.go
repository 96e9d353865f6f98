package services

import (
	"strconv"
	"strings"

	"github.com/epz-tools/udiscan/internal/logger"
)

// checksumAlgorithm verifies the check digit embedded in a product
// identifier. Implementations must be total: any malformed input
// yields false, never a panic or an error.
type checksumAlgorithm interface {
	// Name identifies the algorithm in log output.
	Name() string

	// IsValid reports whether the identifier's check digit verifies.
	IsValid(identifier string) bool
}

// digitSumCheck validates the legacy repeated digit sum scheme: the
// first 13 characters are summed digit-wise until a single digit
// remains, which must equal the 14th character.
type digitSumCheck struct{}

func (digitSumCheck) Name() string { return "digit-sum" }

func (digitSumCheck) IsValid(identifier string) bool {
	number := clamp(identifier, 0, 13)
	check := clamp(identifier, 13, 14)

	for len(number) > 1 {
		sum := 0
		for _, c := range []byte(number) {
			if c < '0' || c > '9' {
				return false
			}
			sum += int(c - '0')
		}
		number = strconv.Itoa(sum)
	}

	// An empty number must never validate silently.
	if number == "" {
		return false
	}
	return number == check
}

// gtin13Check validates the weighted GTIN-13 scheme. Spaces and
// hyphens are tolerated; after stripping them, exactly 13 digits are
// required.
type gtin13Check struct{}

func (gtin13Check) Name() string { return "gtin-13" }

func (gtin13Check) IsValid(identifier string) bool {
	// The 14-character form carries a leading packaging indicator
	// that the GTIN-13 scheme does not cover.
	if len(identifier) < 13 {
		return false
	}
	var gtin string
	if len(identifier) == 14 {
		gtin = identifier[1:]
	} else {
		gtin = identifier[:13]
	}

	gtin = strings.ReplaceAll(gtin, " ", "")
	gtin = strings.ReplaceAll(gtin, "-", "")
	if len(gtin) != 13 || !allDigits(gtin) {
		return false
	}

	expected := gtin13CheckDigit(gtin[:12])
	return int(gtin[12]-'0') == expected
}

// gtin13CheckDigit computes the check digit for the first 12 digits
// of a GTIN-13. The input must be 12 ASCII digits.
func gtin13CheckDigit(gtin12 string) int {
	total := 0
	for i := 0; i < len(gtin12); i++ {
		d := int(gtin12[i] - '0')
		if i%2 == 0 {
			total += d
		} else {
			total += d * 3
		}
	}
	return (10 - total%10) % 10
}

// ChecksumValidator verifies product identifiers by trying an ordered
// list of checksum algorithms. The digit sum scheme is attempted
// first; identifiers that fail it fall back to GTIN-13.
type ChecksumValidator struct {
	algorithms []checksumAlgorithm
}

// NewChecksumValidator creates a validator with the standard
// algorithm order.
func NewChecksumValidator() *ChecksumValidator {
	return &ChecksumValidator{
		algorithms: []checksumAlgorithm{
			digitSumCheck{},
			gtin13Check{},
		},
	}
}

// Validate reports whether the identifier's check digit verifies under
// any supported algorithm. It never returns an error; non-conforming
// input is simply invalid.
func (v *ChecksumValidator) Validate(identifier string) bool {
	for _, alg := range v.algorithms {
		if alg.IsValid(identifier) {
			logger.Debug("checksum: %s accepted %q", alg.Name(), identifier)
			return true
		}
	}
	logger.Debug("checksum: no algorithm accepted %q", identifier)
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
