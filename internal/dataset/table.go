// Package dataset holds the in-memory training table and its decoders.
package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Table is an immutable column-oriented numeric table.
type Table struct {
	names   []string
	index   map[string]int
	columns [][]float64
	rows    int
}

// NewTable builds a table from column names and equally sized columns.
func NewTable(names []string, columns [][]float64) (*Table, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("table: %d names for %d columns", len(names), len(columns))
	}
	t := &Table{
		names:   append([]string(nil), names...),
		index:   make(map[string]int, len(names)),
		columns: columns,
	}
	for i, name := range names {
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("table: duplicate column %q", name)
		}
		t.index[name] = i
		if i == 0 {
			t.rows = len(columns[i])
		} else if len(columns[i]) != t.rows {
			return nil, fmt.Errorf("table: column %q has %d rows, expected %d", name, len(columns[i]), t.rows)
		}
	}
	return t, nil
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Columns returns the column names in file order.
func (t *Table) Columns() []string { return append([]string(nil), t.names...) }

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("table: missing column %q", name)
	}
	return append([]float64(nil), t.columns[i]...), nil
}

// Matrix returns the selected rows (nil for all) of the named columns, in the given order.
func (t *Table) Matrix(names []string, rows []int) (*mat.Dense, error) {
	idx := make([]int, len(names))
	for j, name := range names {
		i, ok := t.index[name]
		if !ok {
			return nil, fmt.Errorf("table: missing column %q", name)
		}
		idx[j] = i
	}
	if rows == nil {
		rows = make([]int, t.rows)
		for i := range rows {
			rows[i] = i
		}
	}
	if len(rows) == 0 || len(names) == 0 {
		return nil, fmt.Errorf("table: empty selection (%d rows, %d columns)", len(rows), len(names))
	}

	m := mat.NewDense(len(rows), len(names), nil)
	for r, row := range rows {
		if row < 0 || row >= t.rows {
			return nil, fmt.Errorf("table: row %d out of range [0, %d)", row, t.rows)
		}
		for c, col := range idx {
			m.Set(r, c, t.columns[col][row])
		}
	}
	return m, nil
}

// Select returns the named column values for the given rows.
func (t *Table) Select(name string, rows []int) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("table: missing column %q", name)
	}
	out := make([]float64, len(rows))
	for k, row := range rows {
		if row < 0 || row >= t.rows {
			return nil, fmt.Errorf("table: row %d out of range [0, %d)", row, t.rows)
		}
		out[k] = t.columns[i][row]
	}
	return out, nil
}
