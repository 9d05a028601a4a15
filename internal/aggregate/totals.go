// Package aggregate computes KPIs, bucket rollups, ages, rankings and
// risk sets over reconciled datasets. Every function is pure: the same
// dataset and arguments always give the same result.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/tabular"
)

// Sum totals a numeric column. The KPI is absent when the column is.
func Sum(ds *tabular.Dataset, col string, kind model.Kind) model.KPI {
	if !ds.Has(col) {
		return model.AbsentKPI(col, kind)
	}
	return model.NewKPI(col, kind, sum(ds, col, nil))
}

// SumColumns totals several columns together. All of them must exist.
func SumColumns(ds *tabular.Dataset, label string, kind model.Kind, cols ...string) model.KPI {
	if len(cols) == 0 || !ds.HasAll(cols...) {
		return model.AbsentKPI(label, kind)
	}
	total := decimal.Zero
	for _, c := range cols {
		total = total.Add(sum(ds, c, nil))
	}
	return model.NewKPI(label, kind, total)
}

// Mean averages a numeric column over all rows; an empty dataset gives 0.
func Mean(ds *tabular.Dataset, col string, kind model.Kind) model.KPI {
	if !ds.Has(col) {
		return model.AbsentKPI(col, kind)
	}
	if ds.Len() == 0 {
		return model.NewKPI(col, kind, decimal.Zero)
	}
	return model.NewKPI(col, kind, sum(ds, col, nil).Div(decimal.NewFromInt(int64(ds.Len()))))
}

// Count is the row count.
func Count(ds *tabular.Dataset, label string) model.KPI {
	return model.NewKPI(label, model.KindCount, decimal.NewFromInt(int64(ds.Len())))
}

// CountWhere counts the rows match accepts.
func CountWhere(ds *tabular.Dataset, label string, match func(row int) bool) model.KPI {
	n := 0
	for r := 0; r < ds.Len(); r++ {
		if match(r) {
			n++
		}
	}
	return model.NewKPI(label, model.KindCount, decimal.NewFromInt(int64(n)))
}

// Ratio divides two KPIs, giving zero when the denominator is zero. The
// result is absent when either input is.
func Ratio(label string, kind model.Kind, num, den model.KPI) model.KPI {
	if !num.Present || !den.Present {
		return model.AbsentKPI(label, kind)
	}
	if den.Value.IsZero() {
		return model.NewKPI(label, kind, decimal.Zero)
	}
	return model.NewKPI(label, kind, num.Value.Div(den.Value))
}

// DistinctCount counts distinct value combinations across cols. ok is
// false when any column is missing.
func DistinctCount(ds *tabular.Dataset, cols ...string) (n int, ok bool) {
	if len(cols) == 0 || !ds.HasAll(cols...) {
		return 0, false
	}
	seen := make(map[string]struct{})
	for r := 0; r < ds.Len(); r++ {
		seen[rowKey(ds, r, cols)] = struct{}{}
	}
	return len(seen), true
}

func sum(ds *tabular.Dataset, col string, rows []int) decimal.Decimal {
	total := decimal.Zero
	if rows == nil {
		for r := 0; r < ds.Len(); r++ {
			total = total.Add(ds.Decimal(col, r))
		}
		return total
	}
	for _, r := range rows {
		total = total.Add(ds.Decimal(col, r))
	}
	return total
}

func rowKey(ds *tabular.Dataset, row int, cols []string) string {
	key := ""
	for i, c := range cols {
		if i > 0 {
			key += "\x1f"
		}
		key += ds.String(c, row)
	}
	return key
}
