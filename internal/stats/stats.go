// Package stats computes descriptive statistics for the numeric columns
// of a dataset, in the shape of a describe() table.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/stat"

	"github.com/tablesweep/cli/internal/dataset"
)

// ColumnStats holds the summary statistics for one numeric column.
type ColumnStats struct {
	Name   string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Summary is the describe() result: one entry per numeric input column.
// A dataset without numeric columns yields an empty, non-nil Summary.
type Summary struct {
	Columns []ColumnStats
}

// Empty reports whether the summary covers no columns.
func (s *Summary) Empty() bool { return len(s.Columns) == 0 }

// Describe computes count, mean, sample standard deviation, min,
// quartiles and max for every numeric column of d.
func Describe(d *dataset.Dataset) (*Summary, error) {
	sum := &Summary{}
	for i := range d.Columns {
		col := &d.Columns[i]
		if col.Kind() != dataset.KindNumeric || len(col.Cells) == 0 {
			continue
		}
		vals, err := col.Floats()
		if err != nil {
			return nil, fmt.Errorf("describe %q: %w", col.Name, err)
		}
		sorted := make([]float64, len(vals))
		copy(sorted, vals)
		sort.Float64s(sorted)
		cs := ColumnStats{
			Name:   col.Name,
			Count:  len(vals),
			Mean:   stat.Mean(vals, nil),
			Min:    sorted[0],
			Q25:    Quantile(sorted, 0.25),
			Median: Quantile(sorted, 0.5),
			Q75:    Quantile(sorted, 0.75),
			Max:    sorted[len(sorted)-1],
		}
		if len(vals) > 1 {
			cs.Std = stat.StdDev(vals, nil)
		}
		sum.Columns = append(sum.Columns, cs)
	}
	return sum, nil
}

// Render writes the summary as a table, one column per numeric input
// column and one row per statistic.
func (s *Summary) Render(w io.Writer) {
	if s.Empty() {
		fmt.Fprintln(w, "no numeric columns to summarize")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	header := table.Row{""}
	for _, c := range s.Columns {
		header = append(header, c.Name)
	}
	t.AppendHeader(header)
	rows := []struct {
		label string
		pick  func(ColumnStats) string
	}{
		{"count", func(c ColumnStats) string { return fmt.Sprintf("%d", c.Count) }},
		{"mean", func(c ColumnStats) string { return formatStat(c.Mean) }},
		{"std", func(c ColumnStats) string { return formatStat(c.Std) }},
		{"min", func(c ColumnStats) string { return formatStat(c.Min) }},
		{"25%", func(c ColumnStats) string { return formatStat(c.Q25) }},
		{"50%", func(c ColumnStats) string { return formatStat(c.Median) }},
		{"75%", func(c ColumnStats) string { return formatStat(c.Q75) }},
		{"max", func(c ColumnStats) string { return formatStat(c.Max) }},
	}
	for _, r := range rows {
		row := table.Row{r.label}
		for _, c := range s.Columns {
			row = append(row, r.pick(c))
		}
		t.AppendRow(row)
	}
	t.Render()
}

func formatStat(v float64) string {
	return fmt.Sprintf("%.6g", v)
}

// Quantile returns the q-th quantile of sorted values using linear
// interpolation between order statistics.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
