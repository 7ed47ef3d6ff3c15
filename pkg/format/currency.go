package format

import (
	"fmt"
	"math"
	"strings"
)

// CHF returns an amount formatted the Swiss way, with apostrophe thousands
// separators and two decimals (e.g., "CHF 1'234.55").
func CHF(amount float64) string {
	formatted := formatPositiveAmount(math.Abs(amount))
	if amount < 0 {
		return "CHF -" + formatted
	}
	return "CHF " + formatted
}

// NumericCHF returns an amount without the currency code but with separators (e.g., "-1'234.55").
func NumericCHF(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + formatPositiveAmount(math.Abs(amount))
}

func formatPositiveAmount(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte('\'')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
