// Package numfmt renders measurement values for display.
package numfmt

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count renders an integer with grouped thousands, e.g. 10,000.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Pounds renders a weight delta with exactly one decimal place.
func Pounds(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// Plural returns singular when n is 1 and plural otherwise.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
