package dashboard

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/holista-dev/holista/internal/aggregate"
	"github.com/holista-dev/holista/internal/aging"
	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/reconcile"
	"github.com/holista-dev/holista/internal/tabular"
)

const (
	colItemNo         = "Item No."
	colQuantity       = "Quantity"
	colInventoryValue = "Inventory Value"
	colInStock        = "In Stock"
	colBrand          = "Brand"
)

// StockStatus builds the stock status page for the selected warehouses,
// or all of them.
func StockStatus(ds *tabular.Dataset, opts Options) *Result {
	rec := reconcile.Reconcile(ds, reconcile.Schema{
		Expected: []string{colWarehouse, colItemDesc},
		Numeric:  []string{colQuantity, colInventoryValue},
	})
	res := newResult("stock-status", "Stock Status Overview", rec)

	filtered := ds
	if len(opts.Warehouses) > 0 {
		filtered = aggregate.FilterIn(ds, colWarehouse, opts.Warehouses)
	}
	if codes := aggregate.Distinct(ds, colWarehouse); len(codes) > 0 {
		res.Notes = append(res.Notes, "Warehouses: "+strings.Join(codes, ", "))
	}

	items, ok := aggregate.DistinctCount(filtered, colItemNo, colItemDesc)
	if !ok {
		items = filtered.Len()
	}
	res.addKPI(
		aggregate.Sum(filtered, colInventoryValue, model.KindCurrency).WithLabel("Total Inventory Value"),
		aggregate.Sum(filtered, colQuantity, model.KindQuantity).WithLabel("Total Quantity"),
		count("Total Items", items),
	)

	if filtered.Len() == 0 {
		res.Notes = append(res.Notes, "No data for the selected warehouse(s).")
	} else {
		top := func(title, col string, n int, kind model.Kind) {
			if rows := aggregate.TopN(filtered, col, n); rows != nil {
				res.addSeries(title, kind, aggregate.Series(filtered, colItemDesc, col, rows))
			}
		}
		top("Top 5 Items by Quantity", colQuantity, 5, model.KindQuantity)
		top("Top 5 Items by Inventory Value", colInventoryValue, 5, model.KindCurrency)
		top("Overall Stock Quantity by Item", colQuantity, 20, model.KindQuantity)
	}

	cols := make([]column, 0, len(filtered.Columns()))
	for _, c := range filtered.Columns() {
		f := asText
		switch c {
		case colQuantity:
			f = asQty
		case colInventoryValue:
			f = asMoney
		}
		cols = append(cols, column{c, c, f})
	}
	res.addTable(detailTable(filtered, "Full Stock Table", "", cols))
	return res
}

// StockAgeing builds the stock ageing page: fresh/old split, brand
// breakdown, bucket distribution and value tiers.
func StockAgeing(ds *tabular.Dataset, _ Options) *Result {
	spec := aging.Stock()
	numeric := append(spec.QuantityColumns(), spec.AmountColumns()...)
	rec := reconcile.Reconcile(ds, reconcile.Schema{
		Numeric: append(numeric, colInStock, colInventoryValue),
	})
	res := newResult("stock-ageing", "Core Stock Ageing Analytics", rec)

	split := aggregate.SplitFreshOld(ds, spec, aging.FreshBoundary)
	head, tail := spec.Head(aging.FreshBoundary), spec.Tail(aging.FreshBoundary)
	res.addKPI(
		measured(ds, "Fresh Stock (<30 Days) - Value", model.KindCurrency, split.FreshValue, head.AmountColumns()),
		measured(ds, "Fresh Stock (<30 Days) - Cases", model.KindQuantity, split.FreshQty, head.QuantityColumns()),
		measured(ds, "Old Stock (>30 Days) - Value", model.KindCurrency, split.OldValue, tail.AmountColumns()),
		measured(ds, "Old Stock (>30 Days) - Cases", model.KindQuantity, split.OldQty, tail.QuantityColumns()),
	)
	if pct, ok := split.FreshShare(); ok {
		res.addKPI(model.NewKPI("Fresh Share of Cases", model.KindPercent, pct))
		res.Notes = append(res.Notes, fmt.Sprintf("%s%% of cases are fresh; %s%% are ageing.",
			pct.StringFixed(1), decimal.NewFromInt(100).Sub(pct).StringFixed(1)))
	} else {
		res.Notes = append(res.Notes, "No cases available.")
	}

	if ds.Has(colBrand) {
		fresh, old := aggregate.GroupSplit(ds, colBrand, spec, aging.FreshBoundary)
		res.addSeries("Fresh Stock Value by Brand (<30 Days)", model.KindCurrency, bucketPoints(fresh, false))
		res.addSeries("Old Stock Value by Brand (>30 Days)", model.KindCurrency, bucketPoints(old, false))
		res.addTable(brandTable("Fresh Stock by Brand (<30 Days)", fresh))
		res.addTable(brandTable("Old Stock by Brand (>30 Days)", old))
	} else {
		res.warn(colBrand, "column not found in extract; brand breakdown skipped")
	}

	rollup, _ := aggregate.BucketRollup(ds, spec)
	res.addSeries("Inventory Age Distribution - Value", model.KindCurrency, bucketPoints(rollup, false))
	res.addSeries("Inventory Age Distribution - Quantity", model.KindQuantity, bucketPoints(rollup, true))
	tiers := aging.StockTiers()
	for i, tier := range aggregate.Tiers(spec, rollup, tiers) {
		cols := spec.Range(tiers[i].Lower, tiers[i].Upper).AmountColumns()
		res.addKPI(measured(ds, tier.Key, model.KindCurrency, tier.Value, cols))
	}

	res.addTable(ageingDetail(ds))
	return res
}

// measured reports v only when at least one of the columns it sums exists.
func measured(ds *tabular.Dataset, label string, kind model.Kind, v decimal.Decimal, cols []string) model.KPI {
	for _, c := range cols {
		if ds.Has(c) {
			return model.NewKPI(label, kind, v)
		}
	}
	return model.AbsentKPI(label, kind)
}

func brandTable(title string, rows []model.BucketAmount) *Table {
	t := newTable(title, "", colBrand, "Value", "Cases")
	for _, b := range rows {
		t.add(b.Label, money(b.Amount), qty(b.Quantity))
	}
	return t
}

func ageingDetail(ds *tabular.Dataset) *Table {
	if ds.HasAll(colItemDesc, colWarehouse, colInStock, colInventoryValue) {
		return detailTable(ds, "Detailed Ageing Data", "", []column{
			{colItemDesc, colItemDesc, asText},
			{colWarehouse, colWarehouse, asText},
			{colInStock, colInStock, asQty},
			{colInventoryValue, colInventoryValue, asMoney},
		})
	}
	cols := make([]column, 0, len(ds.Columns()))
	for _, c := range ds.Columns() {
		cols = append(cols, column{c, c, func(v tabular.Value) string {
			if v.Kind == tabular.KindNumber {
				return qty(v.Num)
			}
			return v.String()
		}})
	}
	return detailTable(ds, "Detailed Ageing Data", "", cols)
}
