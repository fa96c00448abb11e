// Package dataset loads and aligns the tabular feature data consumed by the
// metrics pipeline. Tables are column-named matrices of float64 features; all
// tables compared against each other must share the same column set, matched
// by name rather than position.
package dataset

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrSchemaMismatch reports that two tables do not share the same column set.
	ErrSchemaMismatch = errors.New("dataset: column sets differ")
	// ErrEmptyInput reports a table with zero rows.
	ErrEmptyInput = errors.New("dataset: table has no rows")
	// ErrMalformedInput reports input that could not be parsed as tabular data.
	ErrMalformedInput = errors.New("dataset: malformed input")
)

// Table is an immutable table of real-valued feature rows with named columns.
type Table struct {
	columns []string
	data    *mat.Dense
}

// New builds a Table from column names and row data. Every row must have
// exactly one value per column.
func New(columns []string, rows [][]float64) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrMalformedInput)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	flat := make([]float64, 0, len(rows)*len(columns))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrMalformedInput, i, len(row), len(columns))
		}
		flat = append(flat, row...)
	}
	cols := slices.Clone(columns)
	return &Table{columns: cols, data: mat.NewDense(len(rows), len(cols), flat)}, nil
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	r, _ := t.data.Dims()
	return r
}

// Cols returns the number of columns.
func (t *Table) Cols() int {
	_, c := t.data.Dims()
	return c
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 {
	return mat.Row(nil, i, t.data)
}

// RawRow returns row i without copying. The caller must not modify it.
func (t *Table) RawRow(i int) []float64 {
	return t.data.RawRowView(i)
}

// Matrix returns the backing matrix. The caller must not modify it.
func (t *Table) Matrix() *mat.Dense {
	return t.data
}

// SameSchema reports whether t and other hold the same column set,
// irrespective of order.
func (t *Table) SameSchema(other *Table) bool {
	if len(t.columns) != len(other.columns) {
		return false
	}
	a := slices.Clone(t.columns)
	b := slices.Clone(other.columns)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// Align returns a copy of t with columns reordered to match the given order.
// Fails with ErrSchemaMismatch when the column sets differ.
func (t *Table) Align(columns []string) (*Table, error) {
	if slices.Equal(t.columns, columns) {
		return t, nil
	}
	if len(columns) != len(t.columns) {
		return nil, fmt.Errorf("%w: have %d columns, want %d", ErrSchemaMismatch, len(t.columns), len(columns))
	}
	index := make(map[string]int, len(t.columns))
	for i, name := range t.columns {
		index[name] = i
	}
	rows, _ := t.data.Dims()
	out := mat.NewDense(rows, len(columns), nil)
	for j, name := range columns {
		src, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSchemaMismatch, name)
		}
		for i := range rows {
			out.Set(i, j, t.data.At(i, src))
		}
	}
	return &Table{columns: slices.Clone(columns), data: out}, nil
}

// Concat stacks t on top of other. Both tables must have identical column
// order; align first when loading from independently ordered files.
func (t *Table) Concat(other *Table) (*Table, error) {
	if !slices.Equal(t.columns, other.columns) {
		return nil, fmt.Errorf("%w: concat requires identical column order", ErrSchemaMismatch)
	}
	tr, c := t.data.Dims()
	or, _ := other.data.Dims()
	out := mat.NewDense(tr+or, c, nil)
	out.Slice(0, tr, 0, c).(*mat.Dense).Copy(t.data)
	out.Slice(tr, tr+or, 0, c).(*mat.Dense).Copy(other.data)
	return &Table{columns: slices.Clone(t.columns), data: out}, nil
}
