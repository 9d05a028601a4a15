package aggregate

import (
	"slices"
	"strings"
	"time"

	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/tabular"
)

// OpenLineRule selects open order lines. A column left empty, or absent
// from the dataset, does not filter.
type OpenLineRule struct {
	StatusColumn  string
	OpenMarker    string
	OpenQtyColumn string
	AmountColumn  string
	PostingColumn string
	AgeColumn     string
}

// OpenOverdueLines keeps lines whose trimmed status equals the open
// marker, with positive open quantity and positive amount, then ages them
// by days since posting into AgeColumn. A due date, if present, is not
// consulted.
func OpenOverdueLines(ds *tabular.Dataset, rule OpenLineRule, ref time.Time) (*tabular.Dataset, []model.Age) {
	out := ds.Filter(func(r int) bool {
		if rule.StatusColumn != "" && ds.Has(rule.StatusColumn) &&
			strings.TrimSpace(ds.String(rule.StatusColumn, r)) != rule.OpenMarker {
			return false
		}
		if rule.OpenQtyColumn != "" && ds.Has(rule.OpenQtyColumn) &&
			!ds.Decimal(rule.OpenQtyColumn, r).IsPositive() {
			return false
		}
		if rule.AmountColumn != "" && ds.Has(rule.AmountColumn) &&
			!ds.Decimal(rule.AmountColumn, r).IsPositive() {
			return false
		}
		return true
	})

	if rule.AgeColumn == "" {
		return out, Ages(out, rule.PostingColumn, ref)
	}
	// The age column is built from out itself, so lengths always match.
	ages, _ := AddAgeColumn(out, rule.PostingColumn, rule.AgeColumn, ref)
	return out, ages
}

// FilterIn keeps rows whose col value is one of values.
func FilterIn(ds *tabular.Dataset, col string, values []string) *tabular.Dataset {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return ds.Filter(func(r int) bool { return set[ds.String(col, r)] })
}

// FilterDateRange keeps rows whose date lies within [from, to] by
// calendar day. A zero bound is open. Rows without a date are dropped
// when either bound is set.
func FilterDateRange(ds *tabular.Dataset, col string, from, to time.Time) *tabular.Dataset {
	if from.IsZero() && to.IsZero() {
		return ds
	}
	return ds.Filter(func(r int) bool {
		v := ds.Value(col, r)
		if v.Kind != tabular.KindTime {
			return false
		}
		day := civil(v.Time)
		if !from.IsZero() && day.Before(civil(from)) {
			return false
		}
		if !to.IsZero() && day.After(civil(to)) {
			return false
		}
		return true
	})
}

// Distinct lists the distinct non-blank values of col in sorted order.
func Distinct(ds *tabular.Dataset, col string) []string {
	seen := make(map[string]bool)
	var out []string
	for r := 0; r < ds.Len(); r++ {
		v := ds.String(col, r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
