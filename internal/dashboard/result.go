// Package dashboard builds the render-ready result of each report page
// from a reconciled dataset. Page functions are pure; Runner adds the
// loading.
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/numfmt"
	"github.com/holista-dev/holista/internal/reconcile"
)

// Options are the page filters.
type Options struct {
	// Now is the reference date for ages. Zero means time.Now.
	Now time.Time
	// States selects Display_State values on the order pages. Empty
	// selects nothing unless AllStates is set.
	States    []string
	AllStates bool
	// From and To bound posting dates on the order pages; zero is open.
	From time.Time
	To   time.Time
	// Warehouses selects warehouse codes on the stock status page. Empty
	// means all.
	Warehouses []string
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// Result is everything a page shows.
type Result struct {
	Page     string          `json:"page"`
	Title    string          `json:"title"`
	Source   string          `json:"source,omitempty"`
	KPIs     []model.KPI     `json:"kpis"`
	Series   []Series        `json:"series,omitempty"`
	Tables   []Table         `json:"tables,omitempty"`
	Notes    []string        `json:"notes,omitempty"`
	Warnings []model.Warning `json:"warnings,omitempty"`
}

// Series is one chart-ready sequence of (category, value) pairs.
type Series struct {
	Title  string         `json:"title"`
	Kind   model.Kind     `json:"kind"`
	Points []model.Ranked `json:"points"`
}

// Table is an ordered grid of formatted cells.
type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	// Empty is shown instead of the table when there are no rows.
	Empty string `json:"empty,omitempty"`
}

// FindKPI finds a KPI by label.
func (r *Result) FindKPI(label string) (model.KPI, bool) {
	for _, k := range r.KPIs {
		if k.Label == label {
			return k, true
		}
	}
	return model.KPI{}, false
}

// FindTable finds a table by title.
func (r *Result) FindTable(title string) (*Table, bool) {
	for i := range r.Tables {
		if r.Tables[i].Title == title {
			return &r.Tables[i], true
		}
	}
	return nil, false
}

// FindSeries finds a series by title.
func (r *Result) FindSeries(title string) (*Series, bool) {
	for i := range r.Series {
		if r.Series[i].Title == title {
			return &r.Series[i], true
		}
	}
	return nil, false
}

func newResult(page, title string, rec *reconcile.Result) *Result {
	return &Result{Page: page, Title: title, Warnings: rec.Warnings()}
}

func (r *Result) addKPI(k ...model.KPI) { r.KPIs = append(r.KPIs, k...) }

func (r *Result) addSeries(title string, kind model.Kind, points []model.Ranked) {
	r.Series = append(r.Series, Series{Title: title, Kind: kind, Points: points})
}

func (r *Result) addTable(t *Table) { r.Tables = append(r.Tables, *t) }

func (r *Result) warn(column, message string) {
	r.Warnings = append(r.Warnings, model.Warning{Column: column, Message: message})
}

func newTable(title, empty string, cols ...string) *Table {
	return &Table{Title: title, Columns: cols, Rows: [][]string{}, Empty: empty}
}

func (t *Table) add(cells ...string) { t.Rows = append(t.Rows, cells) }

func count(label string, n int) model.KPI {
	return model.NewKPI(label, model.KindCount, decimal.NewFromInt(int64(n)))
}

func money(d decimal.Decimal) string { return numfmt.Currency(d) }

func qty(d decimal.Decimal) string { return numfmt.Quantity(d) }

func bucketPoints(buckets []model.BucketAmount, quantity bool) []model.Ranked {
	out := make([]model.Ranked, len(buckets))
	for i, b := range buckets {
		v := b.Amount
		if quantity {
			v = b.Quantity
		}
		out[i] = model.Ranked{Key: b.Label, Value: v}
	}
	return out
}
