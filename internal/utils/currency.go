package utils

import (
	"fmt"
	"strings"
)

// FormatCurrency formats an amount as a display string with thousands
// separators, e.g. "Rs 1,234.56". Negative amounts keep the sign in
// front of the symbol.
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-Rs " + groupDigits(fmt.Sprintf("%.2f", -amount))
	}
	return "Rs " + groupDigits(fmt.Sprintf("%.2f", amount))
}

func groupDigits(s string) string {
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
