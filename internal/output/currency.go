package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount in Brazilian notation: R$ 12.345,67
func FormatCurrency(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + grouped.String() + "," + frac
}

// FormatPercent renders a percent value with a comma separator: 8,40%
func FormatPercent(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1) + "%"
}

// FormatRatio renders a 0..1 ratio as a percent: 0.2800 -> 28,00%
func FormatRatio(d decimal.Decimal) string {
	return FormatPercent(d.Mul(decimal.NewFromInt(100)))
}
