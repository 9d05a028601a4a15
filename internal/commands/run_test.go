package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holista-dev/holista/internal/fetch"
)

const testConfig = `ftp:
  host: ftp.example.com
  user: reports
  password: secret
  paths:
    overdue: /r/overdue.csv
    stock_status: /r/stock.csv
logging:
  level: error
`

const overdueCSV = "BP Code,BP Name,0 To 10 Days,11 To 25 Days,26 To 45 Days,46 To 60 Days," +
	"61 To 90 Days,91 To 120 Days,121 Days and above,Balance/G.Total\n" +
	"C1,Alpha,1000,0,0,0,0,0,500,1500\n" +
	"C2,Beta,2500,0,0,0,0,0,0,2500\n"

type mapFetcher map[string]string

func (m mapFetcher) Fetch(_ context.Context, remotePath string) ([]byte, error) {
	body, ok := m[remotePath]
	if !ok {
		return nil, &fetch.ResourceNotFoundError{Paths: []string{remotePath}}
	}
	return []byte(body), nil
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "holista.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0o600))

	a := &app{stderr: io.Discard, fetcher: mapFetcher{"/r/overdue.csv": overdueCSV}}
	root := newRootCommand(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPageCommand_Text(t *testing.T) {
	out, err := execute(t, "receivables", "--as-of", "2025-03-31")
	require.NoError(t, err)

	assert.Contains(t, out, "Overdue Payment Analysis [/r/overdue.csv]")
	assert.Contains(t, out, "Total Outstanding: ₹ 4K")
	assert.Contains(t, out, "=== Collection Priority List (121+ Days) ===")
}

func TestPageCommand_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "receivables")
	require.NoError(t, err)

	var doc struct {
		Page   string `json:"page"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "receivables", doc.Page)
	assert.Equal(t, "/r/overdue.csv", doc.Source)
}

func TestPageCommand_MissingRemoteFile(t *testing.T) {
	out, err := execute(t, "stock-status")
	require.Error(t, err)
	assert.Contains(t, out, "stock-status")
	assert.Contains(t, out, "remote resource not found")
}

func TestAll_ContinuesPastFailures(t *testing.T) {
	out, err := execute(t, "all")
	require.Error(t, err)
	assert.EqualError(t, err, "6 of 7 page(s) failed")

	assert.Contains(t, out, "Overdue Payment Analysis")
	assert.Contains(t, out, "configuration: ftp.paths.overdue_cr is not set")
	assert.Contains(t, out, "stock-ageing")
}

func TestAll_JSONStream(t *testing.T) {
	out, err := execute(t, "--format", "json", "all")
	require.Error(t, err)

	dec := json.NewDecoder(bytes.NewBufferString(out))
	var docs []map[string]any
	for dec.More() {
		var doc map[string]any
		require.NoError(t, dec.Decode(&doc))
		docs = append(docs, doc)
	}
	require.Len(t, docs, 7)
	assert.Equal(t, "receivables", docs[0]["page"])
	assert.Equal(t, "payables", docs[1]["page"])
	assert.Contains(t, docs[1]["error"], "overdue_cr")
}

func TestPaths(t *testing.T) {
	out, err := execute(t, "paths")
	require.NoError(t, err)

	assert.Contains(t, out, "/r/overdue.csv")
	assert.Contains(t, out, "/r/stock.csv")
	assert.Contains(t, out, "(unset)")
}

func TestUnknownFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "receivables")
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestBadLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "paths")
	assert.ErrorContains(t, err, "parsing log level")
}

func TestFilterOptions(t *testing.T) {
	f := filters{asOf: "2025-03-31", from: "2025-01-01", to: "2025-02-01", states: []string{"Delhi"}}
	opts, err := f.options()
	require.NoError(t, err)
	assert.Equal(t, 2025, opts.Now.Year())
	assert.Equal(t, []string{"Delhi"}, opts.States)
	assert.False(t, opts.From.IsZero())

	_, err = (&filters{asOf: "31/03/2025"}).options()
	assert.ErrorContains(t, err, "invalid --as-of")

	_, err = (&filters{from: "2025-02-01", to: "2025-01-01"}).options()
	assert.ErrorContains(t, err, "before --from")
}
