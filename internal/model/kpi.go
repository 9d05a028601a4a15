package model

import "github.com/shopspring/decimal"

// Kind tells the formatter how to render a KPI value.
type Kind string

const (
	KindCurrency Kind = "currency"
	KindQuantity Kind = "quantity"
	KindCount    Kind = "count"
	KindDays     Kind = "days"
	KindPercent  Kind = "percent"
)

// KPI is a scalar metric. Present is false when the source column the
// metric depends on was missing, so a true zero and "absent" differ.
type KPI struct {
	Label   string          `json:"label"`
	Value   decimal.Decimal `json:"value"`
	Kind    Kind            `json:"kind"`
	Present bool            `json:"present"`
}

// NewKPI returns a present KPI.
func NewKPI(label string, kind Kind, value decimal.Decimal) KPI {
	return KPI{Label: label, Value: value, Kind: kind, Present: true}
}

// AbsentKPI returns a zero KPI flagged as missing its source data.
func AbsentKPI(label string, kind Kind) KPI {
	return KPI{Label: label, Value: decimal.Zero, Kind: kind}
}

// WithLabel returns a copy of k relabelled.
func (k KPI) WithLabel(label string) KPI {
	k.Label = label
	return k
}
