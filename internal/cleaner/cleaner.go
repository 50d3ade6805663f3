// Package cleaner implements the four fixed cleaning passes: drop rows
// with missing values, remove per-column IQR outliers, drop duplicate
// rows, normalize text columns. The passes always run in that order.
package cleaner

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/tablesweep/cli/internal/dataset"
	"github.com/tablesweep/cli/internal/stats"
)

// OutlierBounds captures the fence computed for one numeric column pass.
type OutlierBounds struct {
	Column  string  `yaml:"column"`
	Q1      float64 `yaml:"q1"`
	Q3      float64 `yaml:"q3"`
	IQR     float64 `yaml:"iqr"`
	Lower   float64 `yaml:"lower"`
	Upper   float64 `yaml:"upper"`
	Removed int     `yaml:"removed"`
}

// Report summarizes what a full cleaning run removed and touched.
type Report struct {
	InputRows         int             `yaml:"input_rows"`
	OutputRows        int             `yaml:"output_rows"`
	MissingRemoved    int             `yaml:"missing_removed"`
	OutliersRemoved   int             `yaml:"outliers_removed"`
	DuplicatesRemoved int             `yaml:"duplicates_removed"`
	Bounds            []OutlierBounds `yaml:"outlier_bounds,omitempty"`
	NormalizedColumns []string        `yaml:"normalized_columns,omitempty"`
}

// TotalRemoved is the number of rows dropped across all passes.
func (r *Report) TotalRemoved() int {
	return r.MissingRemoved + r.OutliersRemoved + r.DuplicatesRemoved
}

// Clean runs all four passes over a copy of d and returns the cleaned
// dataset together with a per-pass report. The input is never mutated.
func Clean(d *dataset.Dataset) (*dataset.Dataset, *Report) {
	rep := &Report{InputRows: d.NumRows()}

	out, missing := DropMissing(d)
	rep.MissingRemoved = missing

	out, bounds := RemoveOutliers(out)
	rep.Bounds = bounds
	for _, b := range bounds {
		rep.OutliersRemoved += b.Removed
	}

	out, dups := DropDuplicates(out)
	rep.DuplicatesRemoved = dups

	out, normalized := NormalizeStrings(out)
	rep.NormalizedColumns = normalized

	rep.OutputRows = out.NumRows()
	return out, rep
}

// DropMissing removes every row containing at least one absent value.
func DropMissing(d *dataset.Dataset) (*dataset.Dataset, int) {
	before := d.NumRows()
	out := d.Filter(func(row int) bool {
		for j := range d.Columns {
			if dataset.IsMissing(d.Columns[j].Cells[row]) {
				return false
			}
		}
		return true
	})
	return out, before - out.NumRows()
}

// RemoveOutliers filters each numeric column against its IQR fence
// [Q1-1.5*IQR, Q3+1.5*IQR], inclusive. Columns are processed in dataset
// order and each pass operates on the rows surviving the previous passes,
// so column order affects the final row set. Bounds are recomputed fresh
// for every pass from that pass's own distribution.
func RemoveOutliers(d *dataset.Dataset) (*dataset.Dataset, []OutlierBounds) {
	out := d
	var all []OutlierBounds
	for _, name := range d.Names() {
		j, ok := out.ColumnIndex(name)
		if !ok {
			continue
		}
		col := &out.Columns[j]
		if col.Kind() != dataset.KindNumeric || len(col.Cells) == 0 {
			continue
		}
		vals := make([]float64, 0, len(col.Cells))
		for _, cell := range col.Cells {
			if v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		q1 := stats.Quantile(vals, 0.25)
		q3 := stats.Quantile(vals, 0.75)
		iqr := q3 - q1
		b := OutlierBounds{
			Column: name,
			Q1:     q1,
			Q3:     q3,
			IQR:    iqr,
			Lower:  q1 - 1.5*iqr,
			Upper:  q3 + 1.5*iqr,
		}
		before := out.NumRows()
		cells := col.Cells
		out = out.Filter(func(row int) bool {
			v, err := strconv.ParseFloat(strings.TrimSpace(cells[row]), 64)
			if err != nil {
				return false
			}
			return v >= b.Lower && v <= b.Upper
		})
		b.Removed = before - out.NumRows()
		all = append(all, b)
	}
	return out, all
}

// DropDuplicates removes rows that are exact duplicates across all
// columns, keeping the first occurrence.
func DropDuplicates(d *dataset.Dataset) (*dataset.Dataset, int) {
	before := d.NumRows()
	seen := make(map[string]struct{}, before)
	out := d.Filter(func(row int) bool {
		key := strings.Join(d.Row(row), "\x1f")
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		return true
	})
	return out, before - out.NumRows()
}

// NormalizeStrings rewrites every text column: lowercase, trim
// surrounding whitespace, keep only ASCII alphanumerics and whitespace.
// Interior whitespace is preserved. Returns the names of the columns
// that were normalized.
func NormalizeStrings(d *dataset.Dataset) (*dataset.Dataset, []string) {
	out := d.Clone()
	var touched []string
	for j := range out.Columns {
		col := &out.Columns[j]
		if col.Kind() != dataset.KindText {
			continue
		}
		for i, cell := range col.Cells {
			col.Cells[i] = NormalizeCell(cell)
		}
		touched = append(touched, col.Name)
	}
	return out, touched
}

// NormalizeCell applies the string normalization to a single value.
func NormalizeCell(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isKept(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isKept(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return unicode.IsSpace(r)
}
