package dataset

import (
	"fmt"
	"strconv"
	"time"
)

// Kind is the inferred semantic type of a column.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
	KindDatetime    Kind = "datetime"
)

// Column holds one named, typed column of a table. Exactly one of the value
// slices is populated, chosen by Kind; Null marks missing cells and is always
// the same length as the populated slice.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
	Times   []time.Time
	Null    []bool
}

// Len returns the number of cells in the column including nulls.
func (c *Column) Len() int {
	return len(c.Null)
}

// NullCount returns the number of missing cells.
func (c *Column) NullCount() int {
	count := 0
	for _, isNull := range c.Null {
		if isNull {
			count++
		}
	}
	return count
}

// NonNullFloats returns the non-missing numeric values in row order.
// Returns nil for non-numeric columns.
func (c *Column) NonNullFloats() []float64 {
	if c.Kind != KindNumeric {
		return nil
	}
	values := make([]float64, 0, len(c.Floats))
	for i, v := range c.Floats {
		if !c.Null[i] {
			values = append(values, v)
		}
	}
	return values
}

// NonNullStrings returns the non-missing string values in row order.
// Returns nil for non-categorical columns.
func (c *Column) NonNullStrings() []string {
	if c.Kind != KindCategorical {
		return nil
	}
	values := make([]string, 0, len(c.Strings))
	for i, v := range c.Strings {
		if !c.Null[i] {
			values = append(values, v)
		}
	}
	return values
}

// DistinctCount returns the number of distinct non-missing values.
func (c *Column) DistinctCount() int {
	switch c.Kind {
	case KindNumeric:
		seen := make(map[float64]struct{})
		for i, v := range c.Floats {
			if !c.Null[i] {
				seen[v] = struct{}{}
			}
		}
		return len(seen)
	case KindCategorical:
		seen := make(map[string]struct{})
		for i, v := range c.Strings {
			if !c.Null[i] {
				seen[v] = struct{}{}
			}
		}
		return len(seen)
	case KindDatetime:
		seen := make(map[time.Time]struct{})
		for i, v := range c.Times {
			if !c.Null[i] {
				seen[v] = struct{}{}
			}
		}
		return len(seen)
	}
	return 0
}

// DisplayValue renders the cell at row i for human-readable output.
// Missing cells render as an empty string.
func (c *Column) DisplayValue(i int) string {
	if i < 0 || i >= c.Len() || c.Null[i] {
		return ""
	}
	switch c.Kind {
	case KindNumeric:
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	case KindCategorical:
		return c.Strings[i]
	case KindDatetime:
		return c.Times[i].Format("2006-01-02")
	}
	return ""
}

// Table is an immutable-for-analysis tabular dataset: ordered named columns
// over a fixed row count. Analysis code never mutates a Table; date coercion
// works on derived slices, not in place.
type Table struct {
	Name    string
	columns []*Column
	rows    int
}

// NewTable creates an empty table with the given display name.
func NewTable(name string) *Table {
	return &Table{Name: name}
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// Columns returns the columns in declaration order.
func (t *Table) Columns() []*Column {
	return t.columns
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

func (t *Table) addColumn(c *Column) error {
	if len(t.columns) == 0 {
		t.rows = c.Len()
	} else if c.Len() != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.rows)
	}
	t.columns = append(t.columns, c)
	return nil
}

// AddNumeric appends a numeric column. A nil null mask means no missing cells.
func (t *Table) AddNumeric(name string, values []float64, null []bool) error {
	if null == nil {
		null = make([]bool, len(values))
	}
	if len(null) != len(values) {
		return fmt.Errorf("column %q: null mask length %d != value length %d", name, len(null), len(values))
	}
	return t.addColumn(&Column{Name: name, Kind: KindNumeric, Floats: values, Null: null})
}

// AddCategorical appends a categorical/text column. A nil null mask means no
// missing cells.
func (t *Table) AddCategorical(name string, values []string, null []bool) error {
	if null == nil {
		null = make([]bool, len(values))
	}
	if len(null) != len(values) {
		return fmt.Errorf("column %q: null mask length %d != value length %d", name, len(null), len(values))
	}
	return t.addColumn(&Column{Name: name, Kind: KindCategorical, Strings: values, Null: null})
}

// AddDatetime appends a datetime column. A nil null mask means no missing cells.
func (t *Table) AddDatetime(name string, values []time.Time, null []bool) error {
	if null == nil {
		null = make([]bool, len(values))
	}
	if len(null) != len(values) {
		return fmt.Errorf("column %q: null mask length %d != value length %d", name, len(null), len(values))
	}
	return t.addColumn(&Column{Name: name, Kind: KindDatetime, Times: values, Null: null})
}
