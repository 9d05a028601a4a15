// Package numfmt renders amounts and quantities for display using Indian
// digit grouping and K/L/Cr abbreviation.
package numfmt

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/holista-dev/holista/internal/model"
)

// CurrencySymbol prefixes currency values.
const CurrencySymbol = "₹"

var (
	crore    = decimal.NewFromInt(10_000_000)
	lakh     = decimal.NewFromInt(100_000)
	thousand = decimal.NewFromInt(1_000)
)

// Options controls Amount.
type Options struct {
	Currency   bool
	Abbreviate bool
}

// Indian formats the integer part of d with the last three digits grouped
// together and pairs to the left: 1250000 -> "12,50,000".
func Indian(d decimal.Decimal) string {
	n := d.Truncate(0)
	if n.IsZero() {
		return "0"
	}
	digits := n.Abs().String()
	sign := ""
	if n.IsNegative() {
		sign = "-"
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return sign + strings.Join(groups, ",") + "," + tail
}

// Amount formats d per opts. Abbreviated values keep at most two decimals
// with trailing zeros removed; magnitudes below 1,000 are never abbreviated.
func Amount(d decimal.Decimal, opts Options) string {
	s := Indian(d)
	if opts.Abbreviate {
		if abbr, ok := abbreviate(d); ok {
			s = abbr
		}
	}
	if opts.Currency {
		return CurrencySymbol + " " + s
	}
	return s
}

func abbreviate(d decimal.Decimal) (string, bool) {
	abs := d.Abs()
	var div decimal.Decimal
	var suffix string
	switch {
	case abs.GreaterThanOrEqual(crore):
		div, suffix = crore, "Cr"
	case abs.GreaterThanOrEqual(lakh):
		div, suffix = lakh, "L"
	case abs.GreaterThanOrEqual(thousand):
		div, suffix = thousand, "K"
	default:
		return "", false
	}
	v := d.Div(div).StringFixed(2)
	v = strings.TrimRight(v, "0")
	v = strings.TrimSuffix(v, ".")
	return v + suffix, true
}

// Float formats a float. NaN and infinities render as "0", with or
// without currency.
func Float(v float64, opts Options) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return Amount(decimal.NewFromFloat(v), opts)
}

// Currency is the abbreviated currency form used for KPI tiles and charts.
func Currency(d decimal.Decimal) string {
	return Amount(d, Options{Currency: true, Abbreviate: true})
}

// FullCurrency is the unabbreviated currency form used in tables.
func FullCurrency(d decimal.Decimal) string {
	return Amount(d, Options{Currency: true})
}

// Quantity is the abbreviated plain form.
func Quantity(d decimal.Decimal) string {
	return Amount(d, Options{Abbreviate: true})
}

// KPI formats a KPI by its kind. Absent KPIs render as "0".
func KPI(k model.KPI) string {
	if !k.Present {
		return "0"
	}
	switch k.Kind {
	case model.KindCurrency:
		return Currency(k.Value)
	case model.KindCount:
		return Indian(k.Value)
	case model.KindDays:
		return k.Value.StringFixed(1)
	case model.KindPercent:
		return k.Value.StringFixed(1) + "%"
	default:
		return Quantity(k.Value)
	}
}
