package tabular

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Dataset is an ordered set of equally long named columns.
type Dataset struct {
	names []string
	index map[string]int
	cols  [][]Value
	rows  int
}

// New creates an empty dataset with the given column names. Duplicate
// names are kept positionally; lookups by name find the first.
func New(names []string) *Dataset {
	d := &Dataset{
		names: append([]string(nil), names...),
		cols:  make([][]Value, len(names)),
	}
	d.reindex()
	return d
}

func (d *Dataset) reindex() {
	d.index = make(map[string]int, len(d.names))
	for i, n := range d.names {
		if _, ok := d.index[n]; !ok {
			d.index[n] = i
		}
	}
}

// AppendRow adds a row, padding short rows with empty cells and dropping
// cells beyond the last column.
func (d *Dataset) AppendRow(vals []Value) {
	for i := range d.cols {
		var v Value
		if i < len(vals) {
			v = vals[i]
		}
		d.cols[i] = append(d.cols[i], v)
	}
	d.rows++
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.names...)
}

// Len returns the row count.
func (d *Dataset) Len() int { return d.rows }

// Has reports whether a column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// HasAll reports whether every named column exists.
func (d *Dataset) HasAll(names ...string) bool {
	for _, n := range names {
		if !d.Has(n) {
			return false
		}
	}
	return true
}

// Column returns the cells of a column.
func (d *Dataset) Column(name string) ([]Value, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.cols[i], true
}

// Value returns one cell; absent columns read as empty.
func (d *Dataset) Value(name string, row int) Value {
	i, ok := d.index[name]
	if !ok || row < 0 || row >= d.rows {
		return Value{}
	}
	return d.cols[i][row]
}

// Decimal returns the numeric value of a cell, zero when absent.
func (d *Dataset) Decimal(name string, row int) decimal.Decimal {
	return d.Value(name, row).Decimal()
}

// String returns the display text of a cell.
func (d *Dataset) String(name string, row int) string {
	return d.Value(name, row).String()
}

// Set overwrites one cell of an existing column.
func (d *Dataset) Set(name string, row int, v Value) {
	i, ok := d.index[name]
	if !ok || row < 0 || row >= d.rows {
		return
	}
	d.cols[i][row] = v
}

// AddColumn appends a column, or replaces the cells of an existing one.
func (d *Dataset) AddColumn(name string, vals []Value) error {
	if len(vals) != d.rows {
		return fmt.Errorf("column %q has %d values, dataset has %d rows", name, len(vals), d.rows)
	}
	if i, ok := d.index[name]; ok {
		d.cols[i] = vals
		return nil
	}
	d.names = append(d.names, name)
	d.cols = append(d.cols, vals)
	d.index[name] = len(d.names) - 1
	return nil
}

// RenameColumn renames the column at position i.
func (d *Dataset) RenameColumn(i int, name string) {
	if i < 0 || i >= len(d.names) {
		return
	}
	d.names[i] = name
	d.reindex()
}

// Filter returns a new dataset holding the rows keep accepts, in order.
func (d *Dataset) Filter(keep func(row int) bool) *Dataset {
	out := New(d.names)
	for r := 0; r < d.rows; r++ {
		if !keep(r) {
			continue
		}
		for i := range d.cols {
			out.cols[i] = append(out.cols[i], d.cols[i][r])
		}
		out.rows++
	}
	return out
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	return d.Filter(func(int) bool { return true })
}
