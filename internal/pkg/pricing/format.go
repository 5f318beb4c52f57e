package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format renders amount in the given currency using the locale's symbol and
// digit grouping. It rounds half away from zero at the currency's minor-unit
// scale. Negative amounts carry the sign before the symbol. Unknown
// currencies are rendered as "<CODE> <amount>" with two decimals; unknown
// locales fall back to English.
func Format(amount decimal.Decimal, locale, currencyCode string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return currencyCode + " " + amount.StringFixed(2)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	scale, _ := currency.Standard.Rounding(unit)
	rounded := amount.Round(int32(scale))

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	p := message.NewPrinter(tag)
	return sign + p.Sprint(currency.Symbol(unit)) + " " + digits(p, rounded, scale)
}

// digits groups the whole part for the locale and appends the exact fraction.
// amount must be non-negative.
func digits(p *message.Printer, amount decimal.Decimal, scale int) string {
	whole := amount.Truncate(0)
	text := whole.String()
	if whole.BigInt().IsInt64() {
		text = p.Sprintf("%d", whole.IntPart())
	}
	if scale <= 0 {
		return text
	}

	fixed := amount.StringFixed(int32(scale))
	fraction := fixed[strings.IndexByte(fixed, '.')+1:]
	return text + decimalSeparator(p) + fraction
}

func decimalSeparator(p *message.Printer) string {
	sep := strings.TrimSuffix(strings.TrimPrefix(p.Sprintf("%.1f", 0.5), "0"), "5")
	if sep == "" {
		return "."
	}
	return sep
}
