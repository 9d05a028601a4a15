package dashboard

import (
	"strconv"

	"github.com/holista-dev/holista/internal/aggregate"
	"github.com/holista-dev/holista/internal/aging"
	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/reconcile"
	"github.com/holista-dev/holista/internal/tabular"
)

// Column names of the overdue payment and overdue creditor extracts.
const (
	colBPCode    = "BP Code"
	colBPName    = "BP Name"
	colBalance   = "Balance/G.Total"
	colBillState = "Bill-To-State"
)

func balanceSchema(spec aging.Spec, extra ...string) reconcile.Schema {
	return reconcile.Schema{
		Expected: append([]string{colBPCode, colBPName}, extra...),
		Numeric:  append([]string{colBalance}, spec.AmountColumns()...),
	}
}

// balanceKPIs holds the overview shared by both balance pages.
type balanceKPIs struct {
	total  model.KPI
	active model.KPI
	over90 model.KPI
	keys   []model.EntityKey
}

func overview(ds *tabular.Dataset, cols aggregate.EntityColumns, activeLabel string) balanceKPIs {
	keys := aggregate.ActiveEntities(ds, cols)
	active := count(activeLabel, len(keys))
	if !ds.Has(colBalance) {
		active = model.AbsentKPI(activeLabel, model.KindCount)
	}
	return balanceKPIs{
		total:  aggregate.Sum(ds, colBalance, model.KindCurrency).WithLabel("Total Outstanding"),
		active: active,
		over90: aggregate.SumColumns(ds, "90+ Days Outstanding", model.KindCurrency, "91 To 120 Days", "121 Days and above"),
		keys:   keys,
	}
}

func agingSummary(ds *tabular.Dataset, spec aging.Spec, entity string, withState bool) (*Table, bool) {
	need := append([]string{colBPCode, colBPName, colBalance}, spec.AmountColumns()...)
	cols := []string{"Code", entity}
	if withState {
		need = append(need, colBillState)
		cols = append(cols, "State")
	}
	if !ds.HasAll(need...) {
		return nil, false
	}
	cols = append(append(cols, spec.Labels()...), "Total")

	t := newTable("Complete Aging Summary", "", cols...)
	for r := 0; r < ds.Len(); r++ {
		row := []string{ds.String(colBPCode, r), ds.String(colBPName, r)}
		if withState {
			row = append(row, ds.String(colBillState, r))
		}
		for _, c := range spec.AmountColumns() {
			row = append(row, money(ds.Decimal(c, r)))
		}
		t.add(append(row, money(ds.Decimal(colBalance, r)))...)
	}
	return t, true
}

func topBalances(ds *tabular.Dataset, res *Result, title string) {
	rows := aggregate.TopN(ds, colBalance, 10)
	if rows == nil {
		return
	}
	res.addSeries(title, model.KindCurrency, aggregate.Series(ds, colBPName, colBalance, rows))
}

func distribution(ds *tabular.Dataset, spec aging.Spec, res *Result) {
	if !ds.HasAll(spec.AmountColumns()...) {
		res.warn("", "aging distribution needs every bucket column")
		return
	}
	rollup, _ := aggregate.BucketRollup(ds, spec)
	res.addSeries("Aging Distribution", model.KindCurrency, bucketPoints(rollup, false))
}

// Receivables builds the overdue payment page.
func Receivables(ds *tabular.Dataset, _ Options) *Result {
	spec := aging.Receivables()
	rec := reconcile.Reconcile(ds, balanceSchema(spec))
	res := newResult("receivables", "Overdue Payment Analysis", rec)
	cols := aggregate.EntityColumns{Code: colBPCode, Name: colBPName, Balance: colBalance}

	o := overview(ds, cols, "Active Customers")
	res.addKPI(o.total, o.active, o.over90,
		aggregate.Ratio("Average per Customer", model.KindCurrency, o.total, o.active))

	distribution(ds, spec, res)
	topBalances(ds, res, "Top 10 Customers by Outstanding")

	risk := spec.Tail(61)
	if rows, ok := aggregate.HighRisk(ds, cols, spec, aggregate.RiskRule{Tail: risk, SortBy: aggregate.ByTail}); ok {
		res.addKPI(count("High-Risk Customers", len(rows)),
			model.NewKPI("At-Risk Outstanding", model.KindCurrency, aggregate.SumBalances(rows)))
		t := newTable("High-Risk Customers (61+ Days)", "No customers with 61+ days outstanding.",
			"Code", "Customer", "61-90 Days", "91-120 Days", "121+ Days", "Total Outstanding")
		for _, e := range rows {
			t.add(e.Key.Code, e.Key.Name, money(e.Buckets[4]), money(e.Buckets[5]), money(e.Buckets[6]), money(e.Balance))
		}
		res.addTable(t)
	} else {
		res.warn("", "high-risk analysis skipped: required columns missing")
	}

	critical := spec[len(spec)-1]
	if rows, ok := aggregate.Priority(ds, cols, spec, critical); ok {
		res.addKPI(count("Customers with 121+ Days", len(rows)),
			model.NewKPI("Total 121+ Days Amount", model.KindCurrency, aggregate.SumTails(rows)))
		t := newTable("Collection Priority List (121+ Days)", "No customers with 121+ days outstanding.",
			"Priority", "Code", "Customer", "Days 121+ Amount", "Total Outstanding")
		for i, e := range rows {
			t.add(strconv.Itoa(i+1), e.Key.Code, e.Key.Name, money(e.Tail), money(e.Balance))
		}
		res.addTable(t)
	} else {
		res.warn("", "collection priority list skipped: required columns missing")
	}

	if t, ok := agingSummary(ds, spec, "Customer", false); ok {
		res.addTable(t)
	}
	return res
}

// Payables builds the overdue creditor page.
func Payables(ds *tabular.Dataset, _ Options) *Result {
	spec := aging.Receivables()
	rec := reconcile.Reconcile(ds, balanceSchema(spec, colBillState))
	res := newResult("payables", "Overdue Creditor Analysis", rec)
	cols := aggregate.EntityColumns{Code: colBPCode, Name: colBPName, State: colBillState, Balance: colBalance}

	o := overview(ds, cols, "Total Creditors")
	res.addKPI(o.total, o.active, o.over90,
		aggregate.Sum(ds, "121 Days and above", model.KindCurrency).WithLabel("121+ Days Critical"))

	distribution(ds, spec, res)
	topBalances(ds, res, "Top 10 Creditors by Outstanding")

	risk := spec.Tail(91)
	if rows, ok := aggregate.HighRisk(ds, cols, spec, aggregate.RiskRule{Tail: risk, SortBy: aggregate.ByBalance, PositiveBalance: true}); ok && ds.Has(colBillState) {
		res.addKPI(count("At-Risk Creditors (91+)", len(rows)),
			model.NewKPI("Total 91+ Days Amount", model.KindCurrency, aggregate.SumTails(rows)))
		t := newTable("Risk Creditors (91+ Days)", "No creditors with 91+ days outstanding.",
			"Code", "Creditor", "State / Country", "91-120 Amount", "121+ Amount", "Total Balance")
		for _, e := range rows {
			t.add(e.Key.Code, e.Key.Name, e.State, money(e.Buckets[5]), money(e.Buckets[6]), money(e.Balance))
		}
		res.addTable(t)
	} else {
		res.warn("", "risk analysis skipped: required columns missing")
	}

	if t, ok := agingSummary(ds, spec, "Creditor", true); ok {
		res.addTable(t)
	}
	return res
}
