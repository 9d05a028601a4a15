package report

import (
	"encoding/json"
	"io"

	"github.com/holista-dev/holista/internal/dashboard"
	"github.com/holista-dev/holista/internal/model"
	"github.com/holista-dev/holista/internal/numfmt"
)

// JSONWriter emits one JSON document per page. KPIs carry both the exact
// value and its display string.
type JSONWriter struct {
	enc *json.Encoder
}

// NewJSONWriter creates a JSONWriter.
func NewJSONWriter(w io.Writer) *JSONWriter {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONWriter{enc: enc}
}

type kpiView struct {
	model.KPI
	Display string `json:"display"`
}

type pageView struct {
	*dashboard.Result
	KPIs []kpiView `json:"kpis"`
}

func (w *JSONWriter) Write(res *dashboard.Result) error {
	view := pageView{Result: res, KPIs: make([]kpiView, len(res.KPIs))}
	for i, k := range res.KPIs {
		view.KPIs[i] = kpiView{KPI: k, Display: numfmt.KPI(k)}
	}
	return w.enc.Encode(view)
}

func (w *JSONWriter) WriteError(page string, err error) error {
	return w.enc.Encode(struct {
		Page  string `json:"page"`
		Error string `json:"error"`
	}{page, err.Error()})
}
