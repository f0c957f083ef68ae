package table

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrColumnNotFound is matched by every ColumnNotFoundError via errors.Is.
var ErrColumnNotFound = errors.New("column not found")

// ColumnNotFoundError reports a lookup of a column name the table does not have.
type ColumnNotFoundError struct {
	Name      string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("column '%s' not found (table has no columns)", e.Name)
	}
	return fmt.Sprintf("column '%s' not found.\nAvailable columns: %s", e.Name, strings.Join(e.Available, ", "))
}

func (e *ColumnNotFoundError) Is(target error) bool { return target == ErrColumnNotFound }

// Kind is the inferred type of a column.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// Value is a single cell. Raw keeps the trimmed source text.
type Value struct {
	Raw     string
	Num     float64
	IsNum   bool
	Missing bool
}

// Column is a named sequence of cells.
type Column struct {
	Name string
	// Unit is parsed from headers like "Mass [mg/L]" or "Alpha (%)"; Name is left untouched.
	Unit   string
	Values []Value
}

// MissingCount returns how many cells are missing.
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.Missing {
			n++
		}
	}
	return n
}

// Kind reports numeric when every non-missing cell parsed as a number.
// A column with no values at all counts as numeric.
func (c *Column) Kind() Kind {
	for _, v := range c.Values {
		if !v.Missing && !v.IsNum {
			return KindCategorical
		}
	}
	return KindNumeric
}

// Floats returns the non-missing numeric values in row order.
// ok is false when some non-missing cell is not numeric.
func (c *Column) Floats() (vals []float64, ok bool) {
	vals = make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if v.Missing {
			continue
		}
		if !v.IsNum {
			return nil, false
		}
		vals = append(vals, v.Num)
	}
	return vals, true
}

// Strings returns the raw text of the non-missing cells in row order.
func (c *Column) Strings() []string {
	out := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		if !v.Missing {
			out = append(out, v.Raw)
		}
	}
	return out
}

// Table is an ordered set of equal-length columns. Analysis and chart code only read it.
type Table struct {
	Name  string
	cols  []*Column
	index map[string]int
	rows  int
}

// New builds a table from a header and string records. Short records are padded
// with missing cells; extra trailing fields are dropped.
func New(header []string, records [][]string, opt LoadOptions) (*Table, error) {
	t := &Table{index: make(map[string]int, len(header))}
	missing := opt.missingSet()
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		_, unit := splitUnits(name)
		t.index[name] = i
		t.cols = append(t.cols, &Column{Name: name, Unit: unit, Values: make([]Value, 0, len(records))})
	}
	for _, rec := range records {
		if opt.MaxRows > 0 && t.rows >= opt.MaxRows {
			break
		}
		for j, c := range t.cols {
			raw := ""
			if j < len(rec) {
				raw = rec[j]
			}
			c.Values = append(c.Values, parseCell(raw, missing, opt))
		}
		t.rows++
	}
	return t, nil
}

func parseCell(raw string, missing map[string]struct{}, opt LoadOptions) Value {
	s := strings.TrimSpace(raw)
	v := Value{Raw: s}
	if _, ok := missing[s]; ok {
		v.Missing = true
		return v
	}
	if x, ok := parseNumeric(s, opt); ok {
		if math.IsNaN(x) {
			v.Missing = true
			return v
		}
		v.Num = x
		v.IsNum = true
	}
	return v
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Columns returns the columns in table order.
func (t *Table) Columns() []*Column { return t.cols }

// Names returns the column names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Column looks up a column by its exact name.
func (t *Table) Column(name string) (*Column, error) {
	if i, ok := t.index[name]; ok {
		return t.cols[i], nil
	}
	return nil, &ColumnNotFoundError{Name: name, Available: t.Names()}
}
