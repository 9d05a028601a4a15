package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holista-dev/holista/internal/dashboard"
	"github.com/holista-dev/holista/internal/model"
)

func sampleResult() *dashboard.Result {
	return &dashboard.Result{
		Page:   "receivables",
		Title:  "Overdue Payment Analysis",
		Source: "/reports/Overdue_Payment.xlsx",
		KPIs: []model.KPI{
			model.NewKPI("Total Outstanding", model.KindCurrency, decimal.NewFromInt(1_500_000)),
			model.NewKPI("Active Customers", model.KindCount, decimal.NewFromInt(1234)),
			model.AbsentKPI("90+ Days Outstanding", model.KindCurrency),
		},
		Series: []dashboard.Series{
			{Title: "Aging Distribution", Kind: model.KindCurrency, Points: []model.Ranked{
				{Key: "0 To 10 Days", Value: decimal.NewFromInt(12_500_000)},
			}},
			{Title: "Empty Chart", Kind: model.KindQuantity},
		},
		Tables: []dashboard.Table{
			{Title: "Top", Columns: []string{"Code", "Customer"}, Rows: [][]string{{"C1", "Alpha Traders"}}},
			{Title: "Risk", Columns: []string{"Code"}, Rows: [][]string{}, Empty: "No customers with 61+ days outstanding."},
		},
		Notes:    []string{"28.3% of cases are fresh"},
		Warnings: []model.Warning{{Column: "Balance/G.Total", Message: "column not found in extract"}},
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(FormatText, &buf)
	require.NoError(t, err)
	require.NoError(t, w.Write(sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "Overdue Payment Analysis [/reports/Overdue_Payment.xlsx]")
	assert.Contains(t, out, "warning: Balance/G.Total: column not found in extract")
	assert.Contains(t, out, "Total Outstanding: ₹ 15L")
	assert.Contains(t, out, "Active Customers: 1,234")
	assert.Contains(t, out, "90+ Days Outstanding: 0")
	assert.Contains(t, out, "- 0 To 10 Days: ₹ 1.25Cr")
	assert.Contains(t, out, "=== Empty Chart ===\n(no data)")
	assert.Contains(t, out, "Code  Customer\nC1    Alpha Traders\n")
	assert.Contains(t, out, "No customers with 61+ days outstanding.")
	assert.Contains(t, out, "28.3% of cases are fresh")
}

func TestTextWriterError(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewTextWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.WriteError("stock-ageing", errors.New("remote resource not found")))
	assert.Contains(t, buf.String(), "stock-ageing\nerror: remote resource not found")
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, w.Write(sampleResult()))

	var doc struct {
		Page string `json:"page"`
		KPIs []struct {
			Label   string `json:"label"`
			Value   string `json:"value"`
			Present bool   `json:"present"`
			Display string `json:"display"`
		} `json:"kpis"`
		Tables []dashboard.Table `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "receivables", doc.Page)
	require.Len(t, doc.KPIs, 3)
	assert.Equal(t, "1500000", doc.KPIs[0].Value)
	assert.Equal(t, "₹ 15L", doc.KPIs[0].Display)
	assert.False(t, doc.KPIs[2].Present)
	assert.Len(t, doc.Tables, 2)

	buf.Reset()
	require.NoError(t, w.WriteError("payables", errors.New("boom")))
	assert.JSONEq(t, `{"page":"payables","error":"boom"}`, buf.String())
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New("xml", nil)
	assert.Error(t, err)
}
