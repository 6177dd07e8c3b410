// Package currency formats ledger amounts for display. The currency code is
// a display label only; amounts are never converted between currencies.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Option describes one selectable display currency.
type Option struct {
	Code           string
	Symbol         string
	Name           string
	FractionDigits int
}

// Options is the fixed set of display currencies. The first entry is the
// default and also the fallback rule for unknown codes.
var Options = []Option{
	{Code: "USD", Symbol: "$", Name: "ដុល្លារអាមេរិក (US Dollar)", FractionDigits: 2},
	{Code: "KHR", Symbol: "៛", Name: "រៀល (Khmer Riel)", FractionDigits: 0},
}

var printer = message.NewPrinter(language.English)

// Lookup returns the option for code, falling back to the default for
// unknown codes.
func Lookup(code string) Option {
	for _, opt := range Options {
		if opt.Code == code {
			return opt
		}
	}
	return Options[0]
}

// Known reports whether code is one of the enumerated currencies.
func Known(code string) bool {
	for _, opt := range Options {
		if opt.Code == code {
			return true
		}
	}
	return false
}

// Format renders amount with the code's symbol and minor-unit precision,
// e.g. Format(1234.5, "USD") == "$1,234.50" and Format(4000, "KHR") ==
// "៛4,000". Pure: the same inputs always produce the same string.
func Format(amount decimal.Decimal, code string) string {
	opt := Lookup(code)

	negative := amount.IsNegative()
	if negative {
		amount = amount.Neg()
	}

	value := amount.Round(int32(opt.FractionDigits)).InexactFloat64()
	formatted := printer.Sprintf("%s%v", opt.Symbol,
		number.Decimal(value,
			number.MinFractionDigits(opt.FractionDigits),
			number.MaxFractionDigits(opt.FractionDigits)))
	if negative {
		return "-" + formatted
	}
	return formatted
}
