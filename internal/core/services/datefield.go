package services

import (
	"fmt"
	"time"

	"github.com/epz-tools/udiscan/internal/logger"
)

// daysInMonth is the maximum day per month as encoded in the barcode
// date fragment. February is allowed 29 days unconditionally; the
// final calendar re-parse rejects the 29th in non-leap years.
var daysInMonth = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// NormalizeDate converts a 6-digit YYMMDD fragment into an ISO
// YYYY-MM-DD date. The two-digit year is mapped into the 2000s. Any
// malformed or out-of-range fragment yields "" rather than an error.
func NormalizeDate(fragment string) string {
	if len(fragment) != 6 || !allDigits(fragment) {
		logger.Warn("date: rejecting malformed fragment %q", fragment)
		return ""
	}

	yy, mm, dd := fragment[0:2], fragment[2:4], fragment[4:6]
	month := int(mm[0]-'0')*10 + int(mm[1]-'0')
	day := int(dd[0]-'0')*10 + int(dd[1]-'0')

	if month < 1 || month > 12 {
		logger.Warn("date: month %d out of range in %q", month, fragment)
		return ""
	}
	if day < 1 || day > daysInMonth[month-1] {
		logger.Warn("date: day %d invalid for month %d in %q", day, month, fragment)
		return ""
	}

	formatted := fmt.Sprintf("20%s-%s-%s", yy, mm, dd)

	// Calendar sanity check on the assembled date.
	if _, err := time.Parse("2006-01-02", formatted); err != nil {
		logger.Warn("date: %q fails calendar check: %v", formatted, err)
		return ""
	}

	logger.Debug("date: %q -> %q", fragment, formatted)
	return formatted
}
