// Package report prints dashboard results as plain text or JSON.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/holista-dev/holista/internal/dashboard"
	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/numfmt"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Writer prints page results, and the error of a page that failed.
type Writer interface {
	Write(res *dashboard.Result) error
	WriteError(page string, err error) error
}

// New returns the writer for format, writing to w (stdout when nil).
func New(format string, w io.Writer) (Writer, error) {
	if w == nil {
		w = os.Stdout
	}
	switch format {
	case "", FormatText:
		return NewTextWriter(w)
	case FormatJSON:
		return NewJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s or %s)", format, FormatText, FormatJSON)
	}
}

// value formats a series value by its kind.
func value(kind model.Kind, v decimal.Decimal) string {
	return numfmt.KPI(model.NewKPI("", kind, v))
}
