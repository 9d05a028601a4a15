package tabular

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXDecoder reads the first sheet of a workbook, first row as header.
// Cells are read raw, so numbers keep full precision and dates arrive as
// Excel serials for the reconciler to convert.
type XLSXDecoder struct{}

// Format returns the decoder name.
func (d *XLSXDecoder) Format() string { return "xlsx" }

// Extensions returns the file extensions handled by this decoder.
func (d *XLSXDecoder) Extensions() []string { return []string{".xlsx", ".xlsm"} }

// Decode parses a workbook held in memory.
func (d *XLSXDecoder) Decode(data []byte) (*Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Format: d.Format(), Cause: fmt.Errorf("opening workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &DecodeError{Format: d.Format(), Cause: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &DecodeError{Format: d.Format(), Cause: fmt.Errorf("reading sheet %q: %w", sheets[0], err)}
	}
	if len(rows) == 0 {
		return New(nil), nil
	}

	ds := New(headerNames(rows[0]))
	for _, rec := range rows[1:] {
		if blankRow(rec) {
			continue
		}
		ds.AppendRow(textRow(rec))
	}
	return ds, nil
}
