package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRegistryFor(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		hint string
		want string
	}{
		{"/reports/inventory_ageing_report.csv", "csv"},
		{"/reports/STOCK.CSV", "csv"},
		{"csv", "csv"},
		{".csv", "csv"},
		{"/reports/Overdue_Payment.xlsx", "xlsx"},
		{"/reports/no-extension", "xlsx"},
		{"", "xlsx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.For(tt.hint).Format(), "For(%q)", tt.hint)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := DefaultRegistry()
	assert.Panics(t, func() { r.Register(&CSVDecoder{}) })
}

func TestCSVDecode(t *testing.T) {
	data := []byte("BP Code, Balance/G.Total ,Note\nC1,100,\nC2,abc,late\n\nC3\n")

	ds, err := Decode(data, "overdue.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"BP Code", " Balance/G.Total ", "Note"}, ds.Columns(), "names are not trimmed by the decoder")
	require.Equal(t, 3, ds.Len(), "blank lines are skipped")
	assert.Equal(t, "abc", ds.String(" Balance/G.Total ", 1))
	assert.True(t, ds.Value("Note", 0).IsEmpty())
	assert.True(t, ds.Value(" Balance/G.Total ", 2).IsEmpty(), "short rows are padded")
}

func TestCSVDecodeStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Item,Qty\nA,1\n")...)

	ds, err := Decode(data, "csv")
	require.NoError(t, err)
	assert.True(t, ds.Has("Item"))
}

func TestCSVDecodeRejectsInvalidUTF8(t *testing.T) {
	_, err := Decode([]byte{'A', ',', 0xff, 0xfe, '\n'}, "x.csv")

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "csv", derr.Format)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestCSVDecodeEmpty(t *testing.T) {
	ds, err := Decode(nil, "x.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Columns())
}

func TestCSVDecodeBadQuote(t *testing.T) {
	_, err := Decode([]byte("a,b\n\"unterminated,1\n"), "x.csv")

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
}

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestXLSXDecode(t *testing.T) {
	data := workbook(t, [][]any{
		{"BP Code", "BP Name", "Balance/G.Total "},
		{"C1", "Acme", 1500000},
		{"C2", "Zenith", 12.75},
		{},
		{"C3", "Orbit"},
	})

	ds, err := Decode(data, "/reports/Overdue_Payment.xlsx")
	require.NoError(t, err)

	assert.Equal(t, []string{"BP Code", "BP Name", "Balance/G.Total "}, ds.Columns())
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, "1500000", ds.String("Balance/G.Total ", 0))
	assert.Equal(t, "12.75", ds.String("Balance/G.Total ", 1))
	assert.True(t, ds.Value("Balance/G.Total ", 2).IsEmpty())
}

func TestXLSXDecodeBlankHeader(t *testing.T) {
	data := workbook(t, [][]any{
		{"Item", "", "Qty"},
		{"A", "x", 3},
	})

	ds, err := Decode(data, "stock.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"Item", "Unnamed: 1", "Qty"}, ds.Columns())
}

func TestXLSXDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte("definitely not a workbook"), "report.xlsx")

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "xlsx", derr.Format)
	assert.NotNil(t, derr.Unwrap())
}
