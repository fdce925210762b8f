// Package table contains the in-memory record table shared by the loader, the
// analyzers and the renderers.
package table

import (
	"fmt"
)

// Column describes one column of a Table.
type Column struct {
	Name string
	Kind Kind
}

// Numeric reports whether the column holds integer or real values.
func (c Column) Numeric() bool {
	return c.Kind == KindInteger || c.Kind == KindReal
}

// Row is one record; its values line up with the table's columns.
type Row []Value

// Table is an ordered sequence of rows sharing a fixed column set.
// A Table is never modified after construction; every derivation returns a new Table.
type Table struct {
	columns []Column
	index   map[string]int
	rows    []Row
}

// New builds a Table. Every row must have exactly one value per column.
func New(columns []Column, rows []Row) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		index[c.Name] = i
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(r), len(columns))
		}
	}
	return &Table{
		columns: append([]Column(nil), columns...),
		index:   index,
		rows:    rows,
	}, nil
}

// MustNew is New for statically known tables; it panics on a malformed table.
func MustNew(columns []Column, rows []Row) *Table {
	t, err := New(columns, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns a copy of the column descriptors.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the descriptor of the named column.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Row returns row i. The returned slice must not be modified.
func (t *Table) Row(i int) Row { return t.rows[i] }

// Value returns the value at row i, column col.
func (t *Table) Value(i, col int) Value { return t.rows[i][col] }

// Values returns all values of the named column in row order.
func (t *Table) Values(name string) ([]Value, bool) {
	col, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[col]
	}
	return out, true
}

// Subset returns the rows at the given indexes, in the given order.
func (t *Table) Subset(indexes []int) *Table {
	rows := make([]Row, len(indexes))
	for i, idx := range indexes {
		rows[i] = t.rows[idx]
	}
	return &Table{columns: t.columns, index: t.index, rows: rows}
}

// Where returns the rows for which keep returns true, preserving order.
func (t *Table) Where(keep func(r Row) bool) *Table {
	var indexes []int
	for i, r := range t.rows {
		if keep(r) {
			indexes = append(indexes, i)
		}
	}
	return t.Subset(indexes)
}

// Head returns at most n leading rows. A negative n returns the whole table.
func (t *Table) Head(n int) *Table {
	if n < 0 || n >= len(t.rows) {
		return t
	}
	return &Table{columns: t.columns, index: t.index, rows: t.rows[:n]}
}

// Select returns a table with only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]Column, len(names))
	src := make([]int, len(names))
	for i, name := range names {
		idx, ok := t.index[name]
		if !ok {
			return nil, fmt.Errorf("column %q not found", name)
		}
		cols[i] = t.columns[idx]
		src[i] = idx
	}
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		row := make(Row, len(src))
		for j, idx := range src {
			row[j] = r[idx]
		}
		rows[i] = row
	}
	return New(cols, rows)
}

// WithColumn returns a table with one extra column appended; values must have one entry per row.
func (t *Table) WithColumn(col Column, values []Value) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %q has %d values, expected %d", col.Name, len(values), len(t.rows))
	}
	cols := append(t.Columns(), col)
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		row := make(Row, 0, len(r)+1)
		row = append(row, r...)
		rows[i] = append(row, values[i])
	}
	return New(cols, rows)
}
