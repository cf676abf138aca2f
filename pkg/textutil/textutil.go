package textutil

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize lowercases s and strips diacritics, so "Jose" matches "José"
// and "ESTACION" matches "Estación".
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// FormatMoney renders an amount as the panel shows it: rounded to whole
// units, thousands grouped with dots, e.g. 1234567.8 -> "$ 1.234.568".
func FormatMoney(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)
	digits := d.Abs().String()

	var b strings.Builder
	b.WriteString("$ ")
	if d.IsNegative() {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}
