package output

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency selects how money is rendered. Amounts are never converted; only
// the units and grouping change.
type Currency string

const (
	KRW Currency = "KRW"
	USD Currency = "USD"
)

const (
	eok = 100_000_000
	man = 10_000
)

var (
	krPrinter = message.NewPrinter(language.Korean)
	enPrinter = message.NewPrinter(language.English)
)

// ParseCurrency accepts a currency code in any case. Empty means KRW.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case "", KRW:
		return KRW, nil
	case USD:
		return USD, nil
	}
	return "", fmt.Errorf("unsupported currency: %s", s)
}

// Money formats an amount in full.
func (c Currency) Money(v float64) string {
	if c == USD {
		return FormatUSD(v)
	}
	return FormatKoreanCurrency(v)
}

// Compact formats an amount for chart axes and narrow columns.
func (c Currency) Compact(v float64) string {
	if c == USD {
		return compactUSD(v)
	}
	return compactKRW(v)
}

// FormatKoreanCurrency renders won in 억 and 만 units, truncating anything
// below 만원: 123456789 -> "1억 2,345만원".
func FormatKoreanCurrency(v float64) string {
	v = finite(v)
	abs := math.Abs(v)
	if abs < 1 {
		return "0원"
	}
	sign := ""
	if v < 0 {
		sign = "-"
	}

	switch {
	case abs >= eok:
		e := int64(math.Floor(abs / eok))
		m := int64(math.Floor(math.Mod(abs, eok) / man))
		if m > 0 {
			return sign + krPrinter.Sprintf("%d억 %d만원", e, m)
		}
		return sign + krPrinter.Sprintf("%d억원", e)
	case abs >= man:
		return sign + krPrinter.Sprintf("%d만원", int64(math.Floor(abs/man)))
	}
	return sign + krPrinter.Sprintf("%d원", int64(math.Floor(abs)))
}

// FormatUSD renders whole dollars with thousands separators: "$1,234".
func FormatUSD(v float64) string {
	v = finite(v)
	if v < 0 {
		return "-" + enPrinter.Sprintf("$%d", int64(math.Round(-v)))
	}
	return enPrinter.Sprintf("$%d", int64(math.Round(v)))
}

func compactKRW(v float64) string {
	v = finite(v)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= eok:
		return sign + fmt.Sprintf("%.1f억", v/eok)
	case v >= man:
		return sign + fmt.Sprintf("%.0f만", v/man)
	}
	return sign + krPrinter.Sprintf("%d", int64(math.Round(v)))
}

func compactUSD(v float64) string {
	v = finite(v)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1e9:
		return sign + fmt.Sprintf("$%.1fB", v/1e9)
	case v >= 1e6:
		return sign + fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		return sign + fmt.Sprintf("$%.0fK", v/1e3)
	}
	return sign + fmt.Sprintf("$%.0f", v)
}

// FormatPercent renders a fraction (0.07) as "7.0%".
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", finite(fraction)*100)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
