// Package settings formats monetary amounts according to an explicit
// per-user configuration. The configuration is always passed in;
// nothing here reads ambient global state.
package settings

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Symbols maps supported currency codes to their display symbols.
var Symbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "CA$",
	"AUD": "A$",
	"CHF": "CHF",
	"CNY": "¥",
}

// Number formats: the sample value names the grouping and decimal
// separators in use.
const (
	FormatCommaDot   = "1,000.00"
	FormatSpaceComma = "1 000,00"
	FormatDotComma   = "1.000,00"
)

// DefaultCurrency and DefaultNumberFormat match the original product
// defaults for a fresh user.
const (
	DefaultCurrency     = "INR"
	DefaultNumberFormat = FormatCommaDot
)

// ValidCurrency reports whether the code is a supported currency.
func ValidCurrency(code string) bool {
	_, ok := Symbols[code]
	return ok
}

// ValidNumberFormat reports whether the format is a supported sample.
func ValidNumberFormat(format string) bool {
	switch format {
	case FormatCommaDot, FormatSpaceComma, FormatDotComma:
		return true
	}
	return false
}

// Config is the display configuration for one user.
type Config struct {
	CurrencyCode string
	NumberFormat string
}

// Symbol returns the currency symbol for the config, falling back to
// the default currency's symbol for unknown codes.
func (c Config) Symbol() string {
	if s, ok := Symbols[c.CurrencyCode]; ok {
		return s
	}
	return Symbols[DefaultCurrency]
}

// FormatAmount renders the amount with the config's currency symbol,
// two decimal places and grouping separators.
func FormatAmount(cfg Config, amount decimal.Decimal) string {
	group, dec := ",", "."
	switch cfg.NumberFormat {
	case FormatSpaceComma:
		group, dec = " ", ","
	case FormatDotComma:
		group, dec = ".", ","
	}

	fixed := amount.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString(cfg.Symbol())
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(group)
		}
		b.WriteRune(r)
	}
	b.WriteString(dec)
	b.WriteString(fracPart)
	return b.String()
}
