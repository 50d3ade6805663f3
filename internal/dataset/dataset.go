package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a column by the values it holds.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindDatetime
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindDatetime:
		return "datetime"
	default:
		return "text"
	}
}

// Column is a named ordered sequence of cells. Cells are kept in their
// textual form; numeric access parses on demand.
type Column struct {
	Name  string
	Cells []string
}

// Dataset is an ordered collection of equal-length named columns.
type Dataset struct {
	Columns []Column
}

// ColumnNotFoundError reports a lookup of a column name the dataset
// does not have.
type ColumnNotFoundError struct {
	Name      string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// New builds a dataset from a header row and data rows. Short rows are
// padded with empty cells so the equal-length invariant holds.
func New(header []string, rows [][]string) *Dataset {
	ds := &Dataset{Columns: make([]Column, len(header))}
	for j, name := range header {
		ds.Columns[j] = Column{
			Name:  strings.TrimSpace(name),
			Cells: make([]string, 0, len(rows)),
		}
	}
	for _, rec := range rows {
		for j := range ds.Columns {
			cell := ""
			if j < len(rec) {
				cell = rec[j]
			}
			ds.Columns[j].Cells = append(ds.Columns[j].Cells, cell)
		}
	}
	return ds
}

// NumRows returns the row count.
func (d *Dataset) NumRows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Cells)
}

// NumCols returns the column count.
func (d *Dataset) NumCols() int { return len(d.Columns) }

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex resolves a column name to its position.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for i, c := range d.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns the named column or a ColumnNotFoundError.
func (d *Dataset) Column(name string) (*Column, error) {
	if i, ok := d.ColumnIndex(name); ok {
		return &d.Columns[i], nil
	}
	return nil, &ColumnNotFoundError{Name: name, Available: d.Names()}
}

// Row returns a copy of row i.
func (d *Dataset) Row(i int) []string {
	rec := make([]string, len(d.Columns))
	for j := range d.Columns {
		rec[j] = d.Columns[j].Cells[i]
	}
	return rec
}

// Rows returns all rows as records, header excluded.
func (d *Dataset) Rows() [][]string {
	out := make([][]string, d.NumRows())
	for i := range out {
		out[i] = d.Row(i)
	}
	return out
}

// Clone returns a deep copy. Pipeline stages operate on clones so the
// caller's dataset is never mutated.
func (d *Dataset) Clone() *Dataset {
	cp := &Dataset{Columns: make([]Column, len(d.Columns))}
	for i, c := range d.Columns {
		cells := make([]string, len(c.Cells))
		copy(cells, c.Cells)
		cp.Columns[i] = Column{Name: c.Name, Cells: cells}
	}
	return cp
}

// Filter returns a new dataset holding only the rows for which keep
// reports true, preserving order.
func (d *Dataset) Filter(keep func(row int) bool) *Dataset {
	out := &Dataset{Columns: make([]Column, len(d.Columns))}
	for j, c := range d.Columns {
		out.Columns[j] = Column{Name: c.Name}
	}
	for i := 0; i < d.NumRows(); i++ {
		if !keep(i) {
			continue
		}
		for j := range d.Columns {
			out.Columns[j].Cells = append(out.Columns[j].Cells, d.Columns[j].Cells[i])
		}
	}
	return out
}

// DropColumn removes the named column in place.
func (d *Dataset) DropColumn(name string) error {
	i, ok := d.ColumnIndex(name)
	if !ok {
		return &ColumnNotFoundError{Name: name, Available: d.Names()}
	}
	d.Columns = append(d.Columns[:i], d.Columns[i+1:]...)
	return nil
}

// Head returns up to n leading rows as a new dataset.
func (d *Dataset) Head(n int) *Dataset {
	if n > d.NumRows() {
		n = d.NumRows()
	}
	return d.Filter(func(row int) bool { return row < n })
}

// Equal reports whether two datasets have identical columns and cells.
func (d *Dataset) Equal(o *Dataset) bool {
	if len(d.Columns) != len(o.Columns) {
		return false
	}
	for i := range d.Columns {
		if d.Columns[i].Name != o.Columns[i].Name {
			return false
		}
		if len(d.Columns[i].Cells) != len(o.Columns[i].Cells) {
			return false
		}
		for j := range d.Columns[i].Cells {
			if d.Columns[i].Cells[j] != o.Columns[i].Cells[j] {
				return false
			}
		}
	}
	return true
}

// IsMissing reports whether a cell counts as an absent value.
func IsMissing(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "na", "nan", "null":
		return true
	}
	return false
}

var datetimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"02.01.2006",
}

func isDatetime(cell string) bool {
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, strings.TrimSpace(cell)); err == nil {
			return true
		}
	}
	return false
}

// Kind infers the column's kind from its non-missing cells: numeric if
// every cell parses as a float, datetime if every cell matches a known
// date layout, text otherwise. A column with no observed values is text.
func (c *Column) Kind() Kind {
	seen := 0
	numeric, datetime := true, true
	for _, cell := range c.Cells {
		if IsMissing(cell) {
			continue
		}
		seen++
		if numeric {
			if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
				numeric = false
			}
		}
		if datetime && !isDatetime(cell) {
			datetime = false
		}
		if !numeric && !datetime {
			return KindText
		}
	}
	if seen == 0 {
		return KindText
	}
	if numeric {
		return KindNumeric
	}
	if datetime {
		return KindDatetime
	}
	return KindText
}

// Floats parses every cell of the column as float64. Missing cells are
// rejected; callers filter missing rows first.
func (c *Column) Floats() ([]float64, error) {
	out := make([]float64, len(c.Cells))
	for i, cell := range c.Cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: parse %q: %w", c.Name, i, cell, err)
		}
		out[i] = v
	}
	return out, nil
}

// FormatFloat renders a numeric cell back to text in the shortest form
// that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// NumericColumns returns the names of all numeric columns in order.
func (d *Dataset) NumericColumns() []string {
	var names []string
	for i := range d.Columns {
		if d.Columns[i].Kind() == KindNumeric {
			names = append(names, d.Columns[i].Name)
		}
	}
	return names
}
