package aggregate

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/holista-dev/holista/internal/aging"
	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/tabular"
)

// EntityColumns names the identity and balance columns of a
// customer/creditor extract.
type EntityColumns struct {
	Code    string
	Name    string
	State   string
	Balance string
}

// Entity reads one row as an EntityBalance with per-bucket amounts in
// bucket order.
func Entity(ds *tabular.Dataset, cols EntityColumns, spec aging.Spec, row int) model.EntityBalance {
	e := model.EntityBalance{
		Key:     model.EntityKey{Code: ds.String(cols.Code, row), Name: ds.String(cols.Name, row)},
		Balance: ds.Decimal(cols.Balance, row),
		Buckets: make([]decimal.Decimal, len(spec)),
	}
	if cols.State != "" {
		e.State = ds.String(cols.State, row)
	}
	for i, b := range spec {
		e.Buckets[i] = ds.Decimal(b.AmountColumn, row)
	}
	return e
}

// ActiveEntities lists distinct (code, name) pairs with a strictly
// positive balance, in first-seen order.
func ActiveEntities(ds *tabular.Dataset, cols EntityColumns) []model.EntityKey {
	if !ds.Has(cols.Balance) {
		return nil
	}
	seen := make(map[model.EntityKey]bool)
	var keys []model.EntityKey
	for r := 0; r < ds.Len(); r++ {
		if !ds.Decimal(cols.Balance, r).IsPositive() {
			continue
		}
		k := model.EntityKey{Code: ds.String(cols.Code, r), Name: ds.String(cols.Name, r)}
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

// RiskSort selects the ordering of a risk list.
type RiskSort int

const (
	ByTail RiskSort = iota
	ByBalance
)

// RiskRule classifies rows whose amounts in Tail sum above zero.
type RiskRule struct {
	Tail   aging.Spec
	SortBy RiskSort
	// PositiveBalance also drops rows whose own balance is not above zero,
	// even when their entity is active through another row.
	PositiveBalance bool
}

// Columns returns the columns the rule reads.
func (r RiskRule) Columns() []string { return r.Tail.AmountColumns() }

// HighRisk returns rows with a positive tail amount whose entity is in the
// active set, sorted descending by the rule's sort key. Ties keep row
// order. ok is false when a required column is missing.
func HighRisk(ds *tabular.Dataset, cols EntityColumns, spec aging.Spec, rule RiskRule) (rows []model.EntityBalance, ok bool) {
	need := append([]string{cols.Code, cols.Name, cols.Balance}, rule.Columns()...)
	if len(rule.Tail) == 0 || !ds.HasAll(need...) {
		return nil, false
	}

	active := make(map[model.EntityKey]bool)
	for _, k := range ActiveEntities(ds, cols) {
		active[k] = true
	}

	for r := 0; r < ds.Len(); r++ {
		e := Entity(ds, cols, spec, r)
		e.Tail = sumColumns(ds, r, rule.Columns())
		if !e.Tail.IsPositive() || !active[e.Key] || (rule.PositiveBalance && !e.Active()) {
			continue
		}
		rows = append(rows, e)
	}
	sortEntities(rows, rule.SortBy)
	return rows, true
}

// Priority returns rows with a positive amount in bucket and a positive
// balance, largest balance first.
func Priority(ds *tabular.Dataset, cols EntityColumns, spec aging.Spec, bucket aging.Bucket) (rows []model.EntityBalance, ok bool) {
	if !ds.HasAll(cols.Code, cols.Name, cols.Balance, bucket.AmountColumn) {
		return nil, false
	}
	for r := 0; r < ds.Len(); r++ {
		e := Entity(ds, cols, spec, r)
		e.Tail = ds.Decimal(bucket.AmountColumn, r)
		if !e.Tail.IsPositive() || !e.Active() {
			continue
		}
		rows = append(rows, e)
	}
	sortEntities(rows, ByBalance)
	return rows, true
}

// SumBalances totals Balance across rows.
func SumBalances(rows []model.EntityBalance) decimal.Decimal {
	total := decimal.Zero
	for _, e := range rows {
		total = total.Add(e.Balance)
	}
	return total
}

// SumTails totals Tail across rows.
func SumTails(rows []model.EntityBalance) decimal.Decimal {
	total := decimal.Zero
	for _, e := range rows {
		total = total.Add(e.Tail)
	}
	return total
}

func sortEntities(rows []model.EntityBalance, by RiskSort) {
	key := func(e model.EntityBalance) decimal.Decimal {
		if by == ByBalance {
			return e.Balance
		}
		return e.Tail
	}
	slices.SortStableFunc(rows, func(a, b model.EntityBalance) int {
		return key(b).Cmp(key(a))
	})
}

func sumColumns(ds *tabular.Dataset, row int, cols []string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cols {
		total = total.Add(ds.Decimal(c, row))
	}
	return total
}
