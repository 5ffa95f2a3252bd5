package study

import (
	"slices"
	"strconv"
)

// Table is a named-column data source that vector arguments can be looked up
// in. Columns hold float64, string, bool or int values; a column name is
// unique across kinds.
type Table struct {
	columns map[string]any
	order   []string
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{columns: make(map[string]any)}
}

func (t *Table) set(name string, v any) *Table {
	if t.columns == nil {
		t.columns = make(map[string]any)
	}
	if _, ok := t.columns[name]; !ok {
		t.order = append(t.order, name)
	}
	t.columns[name] = v
	return t
}

// SetFloats stores a numeric column.
func (t *Table) SetFloats(name string, v []float64) *Table { return t.set(name, slices.Clone(v)) }

// SetStrings stores a string column.
func (t *Table) SetStrings(name string, v []string) *Table { return t.set(name, slices.Clone(v)) }

// SetBools stores a logical column.
func (t *Table) SetBools(name string, v []bool) *Table { return t.set(name, slices.Clone(v)) }

// SetInts stores an integer column.
func (t *Table) SetInts(name string, v []int) *Table { return t.set(name, slices.Clone(v)) }

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.columns[name]
	return ok
}

// Kind names the type of a column: "numeric", "integer", "character" or
// "logical". It returns "" when the column does not exist.
func (t *Table) Kind(name string) string {
	if t == nil {
		return ""
	}
	switch t.columns[name].(type) {
	case []float64:
		return "numeric"
	case []int:
		return "integer"
	case []string:
		return "character"
	case []bool:
		return "logical"
	}
	return ""
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.order)
}

// Rows returns the length of the longest column.
func (t *Table) Rows() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, c := range t.columns {
		var l int
		switch v := c.(type) {
		case []float64:
			l = len(v)
		case []string:
			l = len(v)
		case []bool:
			l = len(v)
		case []int:
			l = len(v)
		}
		n = max(n, l)
	}
	return n
}

// Floats returns a copy of a numeric column. Integer columns are widened.
func (t *Table) Floats(name string) ([]float64, bool) {
	if t == nil {
		return nil, false
	}
	switch v := t.columns[name].(type) {
	case []float64:
		return slices.Clone(v), true
	case []int:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, true
	}
	return nil, false
}

// Strings returns a copy of a column as labels. Numeric columns are
// formatted.
func (t *Table) Strings(name string) ([]string, bool) {
	if t == nil {
		return nil, false
	}
	switch v := t.columns[name].(type) {
	case []string:
		return slices.Clone(v), true
	case []int:
		out := make([]string, len(v))
		for i, x := range v {
			out[i] = strconv.Itoa(x)
		}
		return out, true
	case []float64:
		out := make([]string, len(v))
		for i, x := range v {
			out[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		return out, true
	}
	return nil, false
}

// Bools returns a copy of a logical column.
func (t *Table) Bools(name string) ([]bool, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.columns[name].([]bool)
	return slices.Clone(v), ok
}

// Selector interprets a column as a selector: logical columns become masks,
// integer columns become index lists.
func (t *Table) Selector(name string) (Selector, bool) {
	if t == nil {
		return Selector{}, false
	}
	switch v := t.columns[name].(type) {
	case []bool:
		return Mask(v...), true
	case []int:
		return Indices(v...), true
	}
	return Selector{}, false
}
