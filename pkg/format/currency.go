// Package format renders amounts and rates for schedule documents.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSymbol is prefixed to amounts by Currency.
const DefaultSymbol = "$"

// printer groups thousands the way amounts are written on quotes.
var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	return CurrencyWithSymbol(amount, DefaultSymbol)
}

// CurrencyWithSymbol is Currency with a caller-chosen symbol.
func CurrencyWithSymbol(amount float64, symbol string) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// Percent renders a fraction as a percentage with the given number of decimals (0.0183 -> "1.83%").
func Percent(fraction float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%.*f%%", decimals, fraction*100)
}

func formatPositiveCurrency(value float64) string {
	return printer.Sprintf("%.2f", value)
}
