package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/holista-dev/holista/internal/dashboard"
	"github.com/holista-dev/holista/internal/numfmt"
)

const pageTemplate = `
{{.Title}}{{if .Source}} [{{.Source}}]{{end}}
{{range .Warnings}}warning: {{.}}
{{end}}
{{range .KPIs}}{{.Label}}: {{kpi .}}
{{end}}{{range .Notes}}{{.}}
{{end}}{{range .Series}}{{$kind := .Kind}}
=== {{.Title}} ===
{{range .Points}}- {{.Key}}: {{value $kind .Value}}
{{else}}(no data)
{{end}}{{end}}{{range .Tables}}
=== {{.Title}} ===
{{if .Rows}}{{table .}}{{else if .Empty}}{{.Empty}}
{{else}}(no rows)
{{end}}{{end}}`

// TextWriter renders results through a text/template.
type TextWriter struct {
	writer io.Writer
	tmpl   *template.Template
}

// NewTextWriter creates a TextWriter.
func NewTextWriter(w io.Writer) (*TextWriter, error) {
	t, err := template.New("page").Funcs(template.FuncMap{
		"kpi":   numfmt.KPI,
		"value": value,
		"table": renderTable,
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &TextWriter{writer: w, tmpl: t}, nil
}

func (w *TextWriter) Write(res *dashboard.Result) error {
	return w.tmpl.Execute(w.writer, res)
}

func (w *TextWriter) WriteError(page string, err error) error {
	_, werr := fmt.Fprintf(w.writer, "\n%s\nerror: %v\n", page, err)
	return werr
}

// renderTable aligns a table into columns.
func renderTable(t dashboard.Table) (string, error) {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}
