package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BucketAmount is one aging bucket total, in bucket order.
type BucketAmount struct {
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Ranked is one (category, value) pair of a chart-ready series.
type Ranked struct {
	Key   string          `json:"key"`
	Value decimal.Decimal `json:"value"`
}

// DatePoint is one point on a per-day trend.
type DatePoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// Age is the whole-day age of a row. Known is false when the row had no
// usable posting date and Days was defaulted to zero.
type Age struct {
	Days  int
	Known bool
}

// Warning is a data-quality notice shown next to a page, never an error.
type Warning struct {
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Column == "" {
		return w.Message
	}
	return w.Column + ": " + w.Message
}
