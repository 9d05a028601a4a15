package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holista-dev/holista/internal/aging"
	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/tabular"
)

var customerCols = EntityColumns{Code: "BP Code", Name: "BP Name", Balance: "Balance/G.Total"}

func TestActiveEntitiesDeduplicates(t *testing.T) {
	ds := build([]string{"BP Code", "BP Name", "Balance/G.Total"},
		[]any{"A", "Alpha", 100},
		[]any{"A", "Alpha", 100},
		[]any{"B", "Beta", -5},
		[]any{"C", "Gamma", 0},
	)

	active := ActiveEntities(ds, customerCols)
	assert.Equal(t, []model.EntityKey{{Code: "A", Name: "Alpha"}}, active)
}

func TestActiveEntitiesWithoutBalance(t *testing.T) {
	ds := build([]string{"BP Code"}, []any{"A"})
	assert.Empty(t, ActiveEntities(ds, customerCols))
}

func receivablesFixture() *tabularFixture {
	names := append([]string{"BP Code", "BP Name", "Balance/G.Total"}, aging.Receivables().AmountColumns()...)
	return &tabularFixture{names: names}
}

type tabularFixture struct {
	names []string
	rows  [][]any
}

func (f *tabularFixture) dataset() *tabular.Dataset { return build(f.names, f.rows...) }

// add appends a row with the given balance and amounts for the 61-90,
// 91-120 and 121+ buckets.
func (f *tabularFixture) add(code, name string, balance, d61, d91, d121 int) *tabularFixture {
	f.rows = append(f.rows, []any{code, name, balance, 0, 0, 0, 0, d61, d91, d121})
	return f
}

func TestHighRiskIntersectsActiveSet(t *testing.T) {
	ds := receivablesFixture().
		add("A", "Alpha", 500, 100, 0, 0).
		add("B", "Beta", 0, 0, 300, 0).
		add("C", "Gamma", 900, 0, 0, 200).
		add("D", "Delta", 50, 0, 0, 0).
		add("E", "Eps", -10, 40, 0, 0).
		dataset()

	spec := aging.Receivables()
	rows, ok := HighRisk(ds, customerCols, spec, RiskRule{Tail: spec.Tail(61), SortBy: ByTail})
	require.True(t, ok)

	var keys []string
	for _, e := range rows {
		keys = append(keys, e.Key.Code)
	}
	assert.Equal(t, []string{"C", "A"}, keys, "B and E settled, D has no tail")
	assert.True(t, d(200).Equal(rows[0].Tail))
	assert.True(t, d(1400).Equal(SumBalances(rows)))
	assert.True(t, d(300).Equal(SumTails(rows)))
	assert.Len(t, rows[0].Buckets, len(spec))
}

func TestHighRiskSortByBalanceIsStable(t *testing.T) {
	ds := receivablesFixture().
		add("A", "Alpha", 100, 0, 10, 0).
		add("B", "Beta", 300, 0, 0, 10).
		add("C", "Gamma", 100, 0, 50, 0).
		dataset()

	spec := aging.Receivables()
	rule := RiskRule{Tail: spec.Tail(91), SortBy: ByBalance}
	first, _ := HighRisk(ds, customerCols, spec, rule)
	second, _ := HighRisk(ds, customerCols, spec, rule)

	assert.Equal(t, first, second)
	assert.Equal(t, "B", first[0].Key.Code)
	assert.Equal(t, "A", first[1].Key.Code)
	assert.Equal(t, "C", first[2].Key.Code)
}

func TestHighRiskPositiveBalance(t *testing.T) {
	ds := receivablesFixture().
		add("A", "Alpha", 100, 0, 10, 0).
		add("A", "Alpha", -50, 0, 20, 0).
		add("B", "Beta", 0, 0, 30, 0).
		dataset()
	spec := aging.Receivables()

	loose, _ := HighRisk(ds, customerCols, spec, RiskRule{Tail: spec.Tail(91), SortBy: ByBalance})
	require.Len(t, loose, 2)

	strict, _ := HighRisk(ds, customerCols, spec, RiskRule{Tail: spec.Tail(91), SortBy: ByBalance, PositiveBalance: true})
	require.Len(t, strict, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(strict[0].Balance))
	assert.True(t, decimal.NewFromInt(10).Equal(SumTails(strict)))
}

func TestHighRiskMissingColumns(t *testing.T) {
	ds := build([]string{"BP Code", "BP Name", "Balance/G.Total"}, []any{"A", "Alpha", 10})
	spec := aging.Receivables()
	_, ok := HighRisk(ds, customerCols, spec, RiskRule{Tail: spec.Tail(61)})
	assert.False(t, ok)
}

func TestPriority(t *testing.T) {
	ds := receivablesFixture().
		add("A", "Alpha", 100, 0, 0, 50).
		add("B", "Beta", 0, 0, 0, 80).
		add("C", "Gamma", 900, 0, 0, 10).
		add("D", "Delta", 400, 0, 20, 0).
		dataset()

	spec := aging.Receivables()
	rows, ok := Priority(ds, customerCols, spec, spec[len(spec)-1])
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, "C", rows[0].Key.Code)
	assert.Equal(t, "A", rows[1].Key.Code)
	assert.True(t, d(60).Equal(SumTails(rows)))
}
