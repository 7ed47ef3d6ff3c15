// Package datetime provides date parsing helpers for Swiss-formatted sources.
package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ReportDateLayout is the output date format used in reports.
const ReportDateLayout = "02.01.2006"

// swissLayouts covers the day-first formats seen in the reference-rate
// table's date columns; day and month appear both zero-padded and not.
var swissLayouts = []string{"02.01.2006", "2.1.2006"}

// ParseSwissDate parses a day-first date such as "2.12.2023" or "02.06.2025".
func ParseSwissDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range swissLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

// ParseYearLabel parses the first-column year label of an index sheet row.
// Labels may carry footnote markers ("2023 1)"); only the leading digits
// count, and they must form a plausible four-digit year.
func ParseYearLabel(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	end := 0
	for end < len(trimmed) && unicode.IsDigit(rune(trimmed[end])) {
		end++
	}
	if end != 4 {
		return 0, fmt.Errorf("no year label in %q", value)
	}
	year, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0, fmt.Errorf("no year label in %q", value)
	}
	if year < 1900 || year > 2200 {
		return 0, fmt.Errorf("year %d out of range in %q", year, value)
	}
	return year, nil
}
