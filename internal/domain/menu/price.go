package menu

import (
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders a price as US currency. Zero renders as "$0.00".
func FormatUSD(v float64) string {
	return usd.Sprintf("$%.2f", v)
}

// FormatPrice renders an optional price; absent prices render as "".
func FormatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return FormatUSD(*p)
}

// PriceRange formats "min - max" over prices, or a single amount when they
// are all equal. With no prices the range is empty rather than an infinite
// bound.
func PriceRange(prices []float64) string {
	if len(prices) == 0 {
		return ""
	}
	lo, hi := slices.Min(prices), slices.Max(prices)
	if lo == hi {
		return FormatUSD(lo)
	}
	return FormatUSD(lo) + " - " + FormatUSD(hi)
}
