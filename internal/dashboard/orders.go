package dashboard

import (
	"fmt"
	"strings"

	"github.com/holista-dev/holista/internal/aggregate"
	"github.com/holista-dev/holista/internal/aging"
	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/reconcile"
	"github.com/holista-dev/holista/internal/tabular"
)

// Column names of the open sales and purchase order extracts.
const (
	colLineStatus   = "Line Status"
	colOpenQty      = "OpenQty"
	colLineTotal    = "LineTotalBeforeTax"
	colPostingDate  = "Posting Date"
	colCases        = "Qty in Cases/Bags"
	colItemName     = "ItemName"
	colItemDesc     = "Item Description"
	colWarehouse    = "Warehouse Code"
	colDocNumber    = "Document Number"
	colDisplayState = "Display_State"
	colOverdueDays  = "Overdue Days"
)

// OpenMarker is the Line Status of an open order line.
const OpenMarker = "O"

var displayState = reconcile.Coalesce{Target: colDisplayState, Primary: "Ship-To-State", Fallback: "Ship-to-city"}

// column is one display column of a detail table.
type column struct {
	source string
	header string
	format func(tabular.Value) string
}

func asText(v tabular.Value) string  { return v.String() }
func asMoney(v tabular.Value) string { return money(v.Decimal()) }
func asQty(v tabular.Value) string   { return qty(v.Decimal()) }

// detailTable renders the listed columns that exist in ds, in order.
func detailTable(ds *tabular.Dataset, title, empty string, cols []column) *Table {
	var present []column
	var headers []string
	for _, c := range cols {
		if ds.Has(c.source) {
			present = append(present, c)
			headers = append(headers, c.header)
		}
	}
	t := newTable(title, empty, headers...)
	for r := 0; r < ds.Len(); r++ {
		cells := make([]string, len(present))
		for i, c := range present {
			cells[i] = c.format(ds.Value(c.source, r))
		}
		t.add(cells...)
	}
	return t
}

// SalesOverdue builds the overdue (open) sales order page. Lines are aged
// by days since posting.
func SalesOverdue(ds *tabular.Dataset, opts Options) *Result {
	rec := reconcile.Reconcile(ds, reconcile.Schema{
		Expected: []string{colLineStatus, colBPName},
		Numeric:  []string{colOpenQty, colLineTotal},
		Dates:    []string{colPostingDate},
		Aliases:  map[string][]string{colDocNumber: {"DocNum", "Sales Order No"}},
	})
	res := newResult("sales-overdue", "Daily Overdue Sales Orders", rec)

	lines, ages := aggregate.OpenOverdueLines(ds, aggregate.OpenLineRule{
		StatusColumn:  colLineStatus,
		OpenMarker:    OpenMarker,
		OpenQtyColumn: colOpenQty,
		AmountColumn:  colLineTotal,
		PostingColumn: colPostingDate,
		AgeColumn:     colOverdueDays,
	}, opts.now())

	delay := model.AbsentKPI("Average Delay (Days)", model.KindDays)
	if mean, ok := aggregate.MeanAge(ages); ok {
		delay = model.NewKPI(delay.Label, model.KindDays, mean)
	}
	res.addKPI(
		aggregate.Count(lines, "Overdue Orders"),
		aggregate.Sum(lines, colLineTotal, model.KindCurrency).WithLabel("Total Overdue Value"),
		delay,
		aggregate.CountWhere(lines, "Overdue Orders (>7d)", func(r int) bool { return ages[r].Days > 7 }),
	)
	if n := aggregate.UnknownAges(ages); n > 0 {
		res.warn(colPostingDate, fmt.Sprintf("%d line(s) have no posting date; their age defaults to 0", n))
	}
	if lines.Len() == 0 {
		res.Notes = append(res.Notes, "No overdue sales orders. All orders are on track.")
		return res
	}

	buckets := aggregate.BucketByAge(lines, aging.SalesOverdue(), ages, colLineTotal)
	res.addSeries("Overdue Value by Delay Bucket", model.KindCurrency, bucketPoints(buckets, false))
	res.addSeries("Top Customers with Overdue", model.KindCurrency, aggregate.TopGroups(lines, colBPName, colLineTotal, 10))

	res.addTable(detailTable(lines, "Detailed Overdue Line Items", "", []column{
		{colDocNumber, "Document Number", asText},
		{colPostingDate, "Posting Date", asText},
		{colBPName, "Customer Name", asText},
		{colItemDesc, "Item", asText},
		{colWarehouse, "Warehouse", asText},
		{colOpenQty, "Open Qty", asQty},
		{colLineTotal, "Pending Value", asMoney},
		{colOverdueDays, "Days Overdue", asText},
	}))
	return res
}

// OrderKind selects the sales or purchase variant of the order analytics
// page.
type OrderKind int

const (
	SalesOrders OrderKind = iota
	PurchaseOrders
)

func (k OrderKind) labels() (page, title, value string) {
	if k == PurchaseOrders {
		return "purchases", "Purchase Order Analytics", "Purchases"
	}
	return "sales", "Sales Analytics", "Sales"
}

// Sales builds the sales order analytics page.
func Sales(ds *tabular.Dataset, opts Options) *Result { return OrderAnalytics(ds, SalesOrders, opts) }

// Purchases builds the purchase order analytics page.
func Purchases(ds *tabular.Dataset, opts Options) *Result {
	return OrderAnalytics(ds, PurchaseOrders, opts)
}

// OrderAnalytics filters order lines by posting date range and state,
// then reports value, cases, the daily trend and the top products and
// partners. No state selection, without AllStates, selects nothing.
func OrderAnalytics(ds *tabular.Dataset, kind OrderKind, opts Options) *Result {
	page, title, valueLabel := kind.labels()
	rec := reconcile.Reconcile(ds, reconcile.Schema{
		Expected: []string{colBPName, colItemName},
		Numeric:  []string{colLineTotal, colCases},
		Dates:    []string{colPostingDate},
		Coalesce: []reconcile.Coalesce{displayState},
	})
	res := newResult(page, title, rec)

	filtered := aggregate.FilterDateRange(ds, colPostingDate, opts.From, opts.To)
	switch {
	case opts.AllStates:
	case len(opts.States) == 0:
		res.warn(colDisplayState, "select one or more states/cities to view data")
		if states := aggregate.Distinct(ds, colDisplayState); len(states) > 0 {
			res.Notes = append(res.Notes, "Available states/cities: "+strings.Join(states, ", "))
		}
		filtered = filtered.Filter(func(int) bool { return false })
	default:
		filtered = aggregate.FilterIn(filtered, colDisplayState, opts.States)
	}

	res.addKPI(
		aggregate.Sum(filtered, colLineTotal, model.KindCurrency).WithLabel(valueLabel),
		aggregate.Sum(filtered, colCases, model.KindQuantity).WithLabel("Total Cases"),
	)

	trend := aggregate.Trend(filtered, colPostingDate, colLineTotal)
	points := make([]model.Ranked, len(trend))
	for i, p := range trend {
		points[i] = model.Ranked{Key: p.Date.Format("2006-01-02"), Value: p.Value}
	}
	res.addSeries(valueLabel+" Trend over Time", model.KindCurrency, points)
	res.addSeries("Top 10 Products by Cases", model.KindQuantity, aggregate.TopGroups(filtered, colItemName, colCases, 10))
	res.addSeries("Top 3 Business Partners by "+valueLabel, model.KindCurrency, aggregate.TopGroups(filtered, colBPName, colLineTotal, 3))

	res.addTable(detailTable(filtered, "Detailed Data View", "No data for the selected filters.", []column{
		{colPostingDate, "Posting Date", asText},
		{colBPName, "Distributor / Customer", asText},
		{colDisplayState, "Display_State", asText},
		{colCases, "Cases", asQty},
		{colLineTotal, valueLabel + " (Lakhs)", asMoney},
	}))
	return res
}
