// Package money formats amounts for display. Arithmetic stays in
// shopspring/decimal; this package only owns the presentation.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// nepaliRupee replaces the ISO code in formatted NPR amounts.
const nepaliRupee = "रु"

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Format renders amount in the given ISO-4217 currency with the locale's
// digit grouping and the currency shown as its ISO code. NPR is the one
// recognized exception and renders with its native glyph instead of the
// code. Unknown codes fall back to "<code> <amount>".
func Format(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return strings.TrimSpace(code + " " + amount.StringFixed(2))
	}

	// Float64 loses exactness past ~15 significant digits. The output is
	// rounded to two fraction digits, so money-sized values survive intact.
	value, _ := amount.Float64()
	formatted := printer.Sprintf("%v", currency.ISO(unit.Amount(value)))

	if code == "NPR" {
		formatted = strings.Replace(formatted, "NPR", nepaliRupee, 1)
	}

	return formatted
}

// FormatMagnitude renders the unsigned size of amount.
func FormatMagnitude(amount decimal.Decimal, code string) string {
	return Format(amount.Abs(), code)
}
