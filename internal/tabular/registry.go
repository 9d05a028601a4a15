package tabular

import (
	"errors"
	"path"
	"strconv"
	"strings"
)

// Decoder converts raw file bytes into a Dataset.
type Decoder interface {
	Decode(data []byte) (*Dataset, error)
	Format() string
	Extensions() []string
}

// Registry selects a decoder by file extension.
type Registry struct {
	decoders map[string]Decoder
	fallback Decoder
}

// NewRegistry creates a registry that uses fallback for unknown extensions.
func NewRegistry(fallback Decoder) *Registry {
	return &Registry{decoders: make(map[string]Decoder), fallback: fallback}
}

// Register adds a decoder. Panics on duplicate extension.
func (r *Registry) Register(d Decoder) {
	for _, ext := range d.Extensions() {
		key := strings.ToLower(ext)
		if _, ok := r.decoders[key]; ok {
			panic("duplicate decoder extension: " + key)
		}
		r.decoders[key] = d
	}
}

// For returns the decoder for a remote path or a bare extension hint
// such as "csv" or ".csv".
func (r *Registry) For(hint string) Decoder {
	ext := strings.ToLower(path.Ext(hint))
	if ext == "" && hint != "" && !strings.Contains(hint, "/") {
		ext = "." + strings.TrimPrefix(strings.ToLower(hint), ".")
	}
	if d, ok := r.decoders[ext]; ok {
		return d
	}
	return r.fallback
}

// Decode decodes data with the decoder chosen for hint. Failures are
// always returned as *DecodeError.
func (r *Registry) Decode(data []byte, hint string) (*Dataset, error) {
	d := r.For(hint)
	ds, err := d.Decode(data)
	if err != nil {
		var derr *DecodeError
		if errors.As(err, &derr) {
			return nil, err
		}
		return nil, &DecodeError{Format: d.Format(), Cause: err}
	}
	return ds, nil
}

// DefaultRegistry returns a registry with the CSV decoder registered and
// the spreadsheet decoder as fallback.
func DefaultRegistry() *Registry {
	r := NewRegistry(&XLSXDecoder{})
	r.Register(&CSVDecoder{})
	return r
}

var defaultRegistry = DefaultRegistry()

// Decode decodes data using the default registry.
func Decode(data []byte, hint string) (*Dataset, error) {
	return defaultRegistry.Decode(data, hint)
}

// headerNames turns a header row into column names, naming blank headers
// the way spreadsheet tools do.
func headerNames(header []string) []string {
	names := make([]string, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			names[i] = "Unnamed: " + strconv.Itoa(i)
			continue
		}
		names[i] = h
	}
	return names
}

func blankRow(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func textRow(rec []string) []Value {
	vals := make([]Value, len(rec))
	for i, c := range rec {
		vals[i] = Text(c)
	}
	return vals
}
