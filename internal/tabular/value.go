package tabular

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindTime
)

// Value is a single cell. Decoders produce text cells; the reconciler
// turns declared columns into numbers and times.
type Value struct {
	Kind Kind
	Text string
	Num  decimal.Decimal
	Time time.Time
}

// Text returns a text cell, or an empty cell for blank input.
func Text(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{Kind: KindText, Text: s}
}

// Number returns a numeric cell.
func Number(d decimal.Decimal) Value {
	return Value{Kind: KindNumber, Num: d}
}

// Time returns a date cell; the zero time is an empty cell.
func Time(t time.Time) Value {
	if t.IsZero() {
		return Value{}
	}
	return Value{Kind: KindTime, Time: t}
}

// IsEmpty reports whether the cell holds nothing.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// Decimal returns the numeric value, zero for non-numeric cells.
func (v Value) Decimal() decimal.Decimal {
	if v.Kind == KindNumber {
		return v.Num
	}
	return decimal.Zero
}

// String renders the cell for grouping keys and plain display.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return v.Num.String()
	case KindTime:
		return v.Time.Format("2006-01-02")
	default:
		return ""
	}
}
