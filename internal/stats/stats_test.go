package stats_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/tablesweep/cli/internal/dataset"
	"github.com/tablesweep/cli/internal/stats"
)

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestQuantileLinearInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	cases := []struct{ q, want float64 }{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tc := range cases {
		if got := stats.Quantile(sorted, tc.q); !approx(got, tc.want) {
			t.Errorf("Quantile(%v) = %v, want %v", tc.q, got, tc.want)
		}
	}
	if got := stats.Quantile([]float64{7}, 0.5); got != 7 {
		t.Errorf("single value quantile = %v", got)
	}
	if got := stats.Quantile(nil, 0.5); got != 0 {
		t.Errorf("empty quantile = %v", got)
	}
}

func TestDescribe(t *testing.T) {
	ds := dataset.New([]string{"v", "name"}, [][]string{
		{"2", "a"}, {"4", "b"}, {"4", "c"}, {"4", "d"},
		{"5", "e"}, {"5", "f"}, {"7", "g"}, {"9", "h"},
	})
	sum, err := stats.Describe(ds)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if len(sum.Columns) != 1 {
		t.Fatalf("expected stats for one numeric column, got %d", len(sum.Columns))
	}
	c := sum.Columns[0]
	if c.Name != "v" || c.Count != 8 {
		t.Fatalf("unexpected column header: %+v", c)
	}
	if !approx(c.Mean, 5) {
		t.Errorf("mean = %v, want 5", c.Mean)
	}
	// sample standard deviation: sqrt(32/7)
	if !approx(c.Std, math.Sqrt(32.0/7.0)) {
		t.Errorf("std = %v, want %v", c.Std, math.Sqrt(32.0/7.0))
	}
	if c.Min != 2 || c.Max != 9 {
		t.Errorf("min/max = %v/%v", c.Min, c.Max)
	}
	if !approx(c.Q25, 4) || !approx(c.Median, 4.5) || !approx(c.Q75, 5.5) {
		t.Errorf("quartiles = %v/%v/%v", c.Q25, c.Median, c.Q75)
	}
}

func TestDescribeNoNumericColumns(t *testing.T) {
	ds := dataset.New([]string{"name"}, [][]string{{"a"}, {"b"}})
	sum, err := stats.Describe(ds)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if !sum.Empty() {
		t.Fatalf("expected empty summary, got %+v", sum)
	}
	var buf bytes.Buffer
	sum.Render(&buf)
	if !strings.Contains(buf.String(), "no numeric columns") {
		t.Fatalf("unexpected render output: %q", buf.String())
	}
}

func TestRenderTable(t *testing.T) {
	ds := dataset.New([]string{"v"}, [][]string{{"1"}, {"2"}, {"3"}})
	sum, err := stats.Describe(ds)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	var buf bytes.Buffer
	sum.Render(&buf)
	out := buf.String()
	for _, want := range []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}
