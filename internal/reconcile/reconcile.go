package reconcile

import (
	"fmt"
	"strings"

	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/tabular"
)

// Coalesce derives Target from Primary, falling back to Fallback where
// Primary is blank.
type Coalesce struct {
	Target   string
	Primary  string
	Fallback string
}

// Schema declares what a page expects from an extract.
type Schema struct {
	Expected []string
	Numeric  []string
	Dates    []string
	// Aliases maps a logical column to naming variants seen in the wild.
	Aliases  map[string][]string
	Coalesce []Coalesce
}

// Result is a reconciled dataset plus what was missing or coerced.
type Result struct {
	Dataset  *tabular.Dataset
	missing  []string
	warnings []model.Warning
}

// Reconcile normalizes ds in place against schema. It never fails: absent
// columns are recorded, unparsable cells become zero or empty.
func Reconcile(ds *tabular.Dataset, schema Schema) *Result {
	res := &Result{Dataset: ds}

	trimNames(ds, res)
	applyAliases(ds, schema.Aliases)

	seen := make(map[string]bool)
	for _, group := range [][]string{schema.Expected, schema.Numeric, schema.Dates} {
		for _, col := range group {
			if seen[col] {
				continue
			}
			seen[col] = true
			if !ds.Has(col) {
				res.missing = append(res.missing, col)
				res.Warn(col, "column not found in extract")
			}
		}
	}

	for _, col := range schema.Numeric {
		if n := coerceNumbers(ds, col); n > 0 {
			res.Warn(col, fmt.Sprintf("%d value(s) could not be read as numbers and were set to 0", n))
		}
	}
	for _, col := range schema.Dates {
		if n := coerceDates(ds, col); n > 0 {
			res.Warn(col, fmt.Sprintf("%d value(s) could not be read as dates", n))
		}
	}
	for _, c := range schema.Coalesce {
		coalesce(ds, c, res)
	}
	return res
}

func trimNames(ds *tabular.Dataset, res *Result) {
	for i, name := range ds.Columns() {
		trimmed := strings.TrimSpace(name)
		if trimmed == name {
			continue
		}
		if ds.Has(trimmed) {
			res.Warn(trimmed, "duplicate column after trimming whitespace; using the first")
		}
		ds.RenameColumn(i, trimmed)
	}
}

func applyAliases(ds *tabular.Dataset, aliases map[string][]string) {
	for logical, variants := range aliases {
		if ds.Has(logical) {
			continue
		}
		for _, v := range variants {
			col, ok := ds.Column(v)
			if !ok {
				continue
			}
			cp := append([]tabular.Value(nil), col...)
			_ = ds.AddColumn(logical, cp)
			break
		}
	}
}

// coerceNumbers converts a column to numbers and returns how many
// non-blank cells failed to parse.
func coerceNumbers(ds *tabular.Dataset, col string) int {
	if !ds.Has(col) {
		return 0
	}
	bad := 0
	for r := 0; r < ds.Len(); r++ {
		v := ds.Value(col, r)
		if v.Kind == tabular.KindNumber {
			continue
		}
		d, ok := ParseNumber(v.Text)
		if !ok && !v.IsEmpty() {
			bad++
		}
		ds.Set(col, r, tabular.Number(d))
	}
	return bad
}

func coerceDates(ds *tabular.Dataset, col string) int {
	if !ds.Has(col) {
		return 0
	}
	bad := 0
	for r := 0; r < ds.Len(); r++ {
		v := ds.Value(col, r)
		if v.Kind == tabular.KindTime || v.IsEmpty() {
			continue
		}
		t, ok := ParseDate(v.String())
		if !ok {
			bad++
			ds.Set(col, r, tabular.Value{})
			continue
		}
		ds.Set(col, r, tabular.Time(t))
	}
	return bad
}

func coalesce(ds *tabular.Dataset, c Coalesce, res *Result) {
	hasPrimary, hasFallback := ds.Has(c.Primary), ds.Has(c.Fallback)
	if !hasPrimary && !hasFallback {
		res.Warn(c.Target, fmt.Sprintf("neither %s nor %s present", c.Primary, c.Fallback))
		return
	}
	vals := make([]tabular.Value, ds.Len())
	for r := range vals {
		v := ds.Value(c.Primary, r)
		if v.IsEmpty() {
			v = ds.Value(c.Fallback, r)
		}
		vals[r] = v
	}
	_ = ds.AddColumn(c.Target, vals)
}

// Has reports whether a column is present after reconciliation.
func (r *Result) Has(col string) bool { return r.Dataset.Has(col) }

// HasAll reports whether all columns are present.
func (r *Result) HasAll(cols ...string) bool { return r.Dataset.HasAll(cols...) }

// Missing lists declared columns that were not found.
func (r *Result) Missing() []string { return append([]string(nil), r.missing...) }

// Warnings lists every data-quality notice raised so far.
func (r *Result) Warnings() []model.Warning { return append([]model.Warning(nil), r.warnings...) }

// Warn records a data-quality notice.
func (r *Result) Warn(column, message string) {
	r.warnings = append(r.warnings, model.Warning{Column: column, Message: message})
}
