package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVDecoder reads comma-delimited UTF-8 text with a header row.
type CSVDecoder struct{}

// Format returns the decoder name.
func (d *CSVDecoder) Format() string { return "csv" }

// Extensions returns the file extensions handled by this decoder.
func (d *CSVDecoder) Extensions() []string { return []string{".csv"} }

// Decode parses data; ragged rows are padded or truncated to the header.
func (d *CSVDecoder) Decode(data []byte) (*Dataset, error) {
	if !utf8.Valid(data) {
		return nil, &DecodeError{Format: d.Format(), Cause: errors.New("content is not valid UTF-8")}
	}

	r := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return New(nil), nil
	}
	if err != nil {
		return nil, &DecodeError{Format: d.Format(), Cause: fmt.Errorf("reading header: %w", err)}
	}

	ds := New(headerNames(header))
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DecodeError{Format: d.Format(), Cause: fmt.Errorf("row %d: %w", line, err)}
		}
		if blankRow(rec) {
			continue
		}
		ds.AppendRow(textRow(rec))
	}
	return ds, nil
}
