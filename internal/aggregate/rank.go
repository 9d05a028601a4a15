package aggregate

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/tabular"
)

// TopN returns the indices of the n rows with the largest valueCol,
// largest first. Ties keep row order.
func TopN(ds *tabular.Dataset, valueCol string, n int) []int {
	if !ds.Has(valueCol) || n <= 0 {
		return nil
	}
	rows := make([]int, ds.Len())
	for i := range rows {
		rows[i] = i
	}
	slices.SortStableFunc(rows, func(a, b int) int {
		return ds.Decimal(valueCol, b).Cmp(ds.Decimal(valueCol, a))
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// Series pairs labelCol with valueCol for the given rows.
func Series(ds *tabular.Dataset, labelCol, valueCol string, rows []int) []model.Ranked {
	out := make([]model.Ranked, len(rows))
	for i, r := range rows {
		out[i] = model.Ranked{Key: ds.String(labelCol, r), Value: ds.Decimal(valueCol, r)}
	}
	return out
}

// TopGroups sums valueCol per distinct keyCol and returns the n largest
// groups. Groups tie-break by first appearance; blank keys are skipped.
func TopGroups(ds *tabular.Dataset, keyCol, valueCol string, n int) []model.Ranked {
	if !ds.HasAll(keyCol, valueCol) || n <= 0 {
		return nil
	}
	index := make(map[string]int)
	var groups []model.Ranked
	for r := 0; r < ds.Len(); r++ {
		k := ds.String(keyCol, r)
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, model.Ranked{Key: k, Value: decimal.Zero})
		}
		groups[i].Value = groups[i].Value.Add(ds.Decimal(valueCol, r))
	}
	slices.SortStableFunc(groups, func(a, b model.Ranked) int {
		return b.Value.Cmp(a.Value)
	})
	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

// Trend sums valueCol per calendar date, ascending. Rows without a date
// are skipped.
func Trend(ds *tabular.Dataset, dateCol, valueCol string) []model.DatePoint {
	if !ds.HasAll(dateCol, valueCol) {
		return nil
	}
	index := make(map[string]int)
	var points []model.DatePoint
	for r := 0; r < ds.Len(); r++ {
		v := ds.Value(dateCol, r)
		if v.Kind != tabular.KindTime {
			continue
		}
		day := civil(v.Time)
		k := day.Format("2006-01-02")
		i, ok := index[k]
		if !ok {
			i = len(points)
			index[k] = i
			points = append(points, model.DatePoint{Date: day, Value: decimal.Zero})
		}
		points[i].Value = points[i].Value.Add(ds.Decimal(valueCol, r))
	}
	slices.SortFunc(points, func(a, b model.DatePoint) int {
		return a.Date.Compare(b.Date)
	})
	return points
}
