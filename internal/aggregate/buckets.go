package aggregate

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/holista-dev/holista/internal/aging"
	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/tabular"
)

// BucketRollup sums each bucket's amount and quantity columns across all
// rows, in bucket order. Absent bucket columns contribute zero and are
// returned in missing.
func BucketRollup(ds *tabular.Dataset, spec aging.Spec) (rollup []model.BucketAmount, missing []string) {
	rollup = make([]model.BucketAmount, len(spec))
	for i, b := range spec {
		rollup[i] = model.BucketAmount{Label: b.Label, Amount: decimal.Zero, Quantity: decimal.Zero}
		for _, c := range []string{b.AmountColumn, b.QuantityColumn} {
			if c != "" && !ds.Has(c) {
				missing = append(missing, c)
			}
		}
		if b.AmountColumn != "" {
			rollup[i].Amount = sum(ds, b.AmountColumn, nil)
		}
		if b.QuantityColumn != "" {
			rollup[i].Quantity = sum(ds, b.QuantityColumn, nil)
		}
	}
	return rollup, missing
}

// BucketByAge classifies each row's age into a bucket and sums amountCol per
// bucket; Quantity holds the line count. Rows below the first bucket are
// not counted.
func BucketByAge(ds *tabular.Dataset, spec aging.Spec, ages []model.Age, amountCol string) []model.BucketAmount {
	out := make([]model.BucketAmount, len(spec))
	for i, b := range spec {
		out[i] = model.BucketAmount{Label: b.Label, Amount: decimal.Zero, Quantity: decimal.Zero}
	}
	for r, age := range ages {
		i := spec.Classify(age.Days)
		if i < 0 {
			continue
		}
		out[i].Amount = out[i].Amount.Add(ds.Decimal(amountCol, r))
		out[i].Quantity = out[i].Quantity.Add(decimal.NewFromInt(1))
	}
	return out
}

// FreshOld is the two-way stock split at a day boundary.
type FreshOld struct {
	FreshQty   decimal.Decimal
	FreshValue decimal.Decimal
	OldQty     decimal.Decimal
	OldValue   decimal.Decimal
}

// FreshShare returns the fresh percentage of total quantity. ok is false
// when there is no quantity at all.
func (f FreshOld) FreshShare() (pct decimal.Decimal, ok bool) {
	total := f.FreshQty.Add(f.OldQty)
	if !total.IsPositive() {
		return decimal.Zero, false
	}
	return f.FreshQty.Div(total).Mul(decimal.NewFromInt(100)), true
}

// SplitFreshOld sums buckets ending at or before boundary as fresh and
// the rest as old.
func SplitFreshOld(ds *tabular.Dataset, spec aging.Spec, boundary int) FreshOld {
	fresh, old := spec.Head(boundary), spec.Tail(boundary)
	return FreshOld{
		FreshQty:   sumAll(ds, fresh.QuantityColumns()),
		FreshValue: sumAll(ds, fresh.AmountColumns()),
		OldQty:     sumAll(ds, old.QuantityColumns()),
		OldValue:   sumAll(ds, old.AmountColumns()),
	}
}

// Tiers folds a rollup into coarser tiers. rollup must be in bucket order.
func Tiers(spec aging.Spec, rollup []model.BucketAmount, tiers []aging.Tier) []model.Ranked {
	out := make([]model.Ranked, len(tiers))
	for i, t := range tiers {
		out[i] = model.Ranked{Key: t.Label, Value: decimal.Zero}
		for j, b := range spec {
			if j < len(rollup) && b.Lower >= t.Lower && b.Upper <= t.Upper {
				out[i].Value = out[i].Value.Add(rollup[j].Amount)
			}
		}
	}
	return out
}

// GroupSplit totals fresh and old stock per group (e.g. brand), each
// sorted by value descending. Rows with a blank group are skipped.
func GroupSplit(ds *tabular.Dataset, groupCol string, spec aging.Spec, boundary int) (fresh, old []model.BucketAmount) {
	if !ds.Has(groupCol) {
		return nil, nil
	}
	return groupTotals(ds, groupCol, spec.Head(boundary)), groupTotals(ds, groupCol, spec.Tail(boundary))
}

func groupTotals(ds *tabular.Dataset, groupCol string, buckets aging.Spec) []model.BucketAmount {
	amounts, qtys := buckets.AmountColumns(), buckets.QuantityColumns()
	index := make(map[string]int)
	var out []model.BucketAmount
	for r := 0; r < ds.Len(); r++ {
		g := ds.String(groupCol, r)
		if g == "" {
			continue
		}
		i, ok := index[g]
		if !ok {
			i = len(out)
			index[g] = i
			out = append(out, model.BucketAmount{Label: g, Amount: decimal.Zero, Quantity: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(sumColumns(ds, r, amounts))
		out[i].Quantity = out[i].Quantity.Add(sumColumns(ds, r, qtys))
	}
	slices.SortStableFunc(out, func(a, b model.BucketAmount) int {
		return b.Amount.Cmp(a.Amount)
	})
	return out
}

func sumAll(ds *tabular.Dataset, cols []string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cols {
		total = total.Add(sum(ds, c, nil))
	}
	return total
}
