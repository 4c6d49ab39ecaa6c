// Package table provides a small in-memory tabular model: ordered named
// columns holding typed scalar cells.
//
// Cells are int64, float64, string, bool or nil. A nil cell is a missing
// value and never equals anything, including another nil.
package table

import (
	"fmt"
)

// Table is an ordered collection of rows sharing one column layout.
type Table struct {
	// Name identifies the table in error messages (optional).
	Name string

	columns []string
	rows    [][]any
}

// New creates an empty table with the given column layout.
func New(name string, columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Name: name, columns: cols}
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Index returns the position of the first column with the given name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Append adds a row. The number of values must match the column count.
func (t *Table) Append(values ...any) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("table %s: row has %d values, expected %d", t.label(), len(values), len(t.columns))
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = Normalize(v)
	}
	t.rows = append(t.rows, row)
	return nil
}

// Row returns a view of row i.
func (t *Table) Row(i int) Row {
	return Row{t: t, i: i}
}

// Rename renames columns in place according to mapping (old -> new).
// Names in mapping that are not columns of the table are ignored.
func (t *Table) Rename(mapping map[string]string) {
	for i, c := range t.columns {
		if to, ok := mapping[c]; ok {
			t.columns[i] = to
		}
	}
}

// SetColumn computes a value for every row and stores it in the named
// column. An existing column is overwritten, otherwise the column is
// appended. The first error from fn aborts and leaves the table unchanged.
func (t *Table) SetColumn(name string, fn func(Row) (any, error)) error {
	values := make([]any, len(t.rows))
	for i := range t.rows {
		v, err := fn(t.Row(i))
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		values[i] = Normalize(v)
	}

	idx := t.Index(name)
	if idx < 0 {
		t.columns = append(t.columns, name)
		for i := range t.rows {
			t.rows[i] = append(t.rows[i], values[i])
		}
		return nil
	}
	for i := range t.rows {
		t.rows[i][idx] = values[i]
	}
	return nil
}

func (t *Table) label() string {
	if t.Name == "" {
		return "<unnamed>"
	}
	return t.Name
}

// Row is a read-only view of one table row.
type Row struct {
	t *Table
	i int
}

// Get returns the cell in the named column.
func (r Row) Get(name string) (any, error) {
	idx := r.t.Index(name)
	if idx < 0 {
		return nil, &ColumnError{Table: r.t.label(), Column: name}
	}
	return r.t.rows[r.i][idx], nil
}

// Values returns a copy of the row's cells in column order.
func (r Row) Values() []any {
	vals := make([]any, len(r.t.rows[r.i]))
	copy(vals, r.t.rows[r.i])
	return vals
}

// ColumnError is returned when a required column does not exist.
type ColumnError struct {
	Table  string
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("table %s has no column %q", e.Table, e.Column)
}
