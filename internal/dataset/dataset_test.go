package dataset

import (
	"errors"
	"testing"
)

func TestNewPadsShortRows(t *testing.T) {
	ds := New([]string{"a", "b", "c"}, [][]string{
		{"1", "2", "3"},
		{"4"},
	})
	if ds.NumRows() != 2 || ds.NumCols() != 3 {
		t.Fatalf("got %dx%d, want 2x3", ds.NumRows(), ds.NumCols())
	}
	if got := ds.Columns[2].Cells[1]; got != "" {
		t.Fatalf("expected padded empty cell, got %q", got)
	}
}

func TestKindInference(t *testing.T) {
	cases := []struct {
		name  string
		cells []string
		want  Kind
	}{
		{"ints", []string{"1", "2", "-3"}, KindNumeric},
		{"floats", []string{"1.5", "2e3", " 7 "}, KindNumeric},
		{"numeric with missing", []string{"1", "NA", "3"}, KindNumeric},
		{"text", []string{"alice", "bob"}, KindText},
		{"mixed", []string{"1", "bob"}, KindText},
		{"dates", []string{"2024-08-10", "2024-08-12"}, KindDatetime},
		{"all missing", []string{"", "NaN"}, KindText},
	}
	for _, tc := range cases {
		c := Column{Name: tc.name, Cells: tc.cells}
		if got := c.Kind(); got != tc.want {
			t.Errorf("%s: Kind() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsMissing(t *testing.T) {
	for _, v := range []string{"", "  ", "NA", "nan", "NULL"} {
		if !IsMissing(v) {
			t.Errorf("IsMissing(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"0", "none", "alice"} {
		if IsMissing(v) {
			t.Errorf("IsMissing(%q) = true, want false", v)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	ds := New([]string{"a"}, [][]string{{"1"}, {"2"}})
	cp := ds.Clone()
	cp.Columns[0].Cells[0] = "changed"
	if ds.Columns[0].Cells[0] != "1" {
		t.Fatal("mutating the clone leaked into the original")
	}
}

func TestDropColumn(t *testing.T) {
	ds := New([]string{"age", "name"}, [][]string{{"25", "alice"}, {"30", "bob"}})
	if err := ds.DropColumn("age"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if ds.NumCols() != 1 || ds.Columns[0].Name != "name" {
		t.Fatalf("unexpected columns after drop: %v", ds.Names())
	}
	if ds.NumRows() != 2 {
		t.Fatalf("row count changed: %d", ds.NumRows())
	}
}

func TestDropColumnNotFoundLeavesDatasetUnchanged(t *testing.T) {
	ds := New([]string{"age", "name"}, [][]string{{"25", "alice"}})
	before := ds.Clone()
	err := ds.DropColumn("salary")
	if err == nil {
		t.Fatal("expected error for unknown column")
	}
	var nf *ColumnNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected ColumnNotFoundError, got %T", err)
	}
	if !ds.Equal(before) {
		t.Fatal("dataset mutated by failed drop")
	}
}

func TestFloats(t *testing.T) {
	c := Column{Name: "v", Cells: []string{"1", " 2.5", "-3"}}
	vals, err := c.Floats()
	if err != nil {
		t.Fatalf("floats: %v", err)
	}
	want := []float64{1, 2.5, -3}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("vals[%d] = %v, want %v", i, vals[i], want[i])
		}
	}
	bad := Column{Name: "v", Cells: []string{"x"}}
	if _, err := bad.Floats(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestHead(t *testing.T) {
	ds := New([]string{"a"}, [][]string{{"1"}, {"2"}, {"3"}})
	if got := ds.Head(2).NumRows(); got != 2 {
		t.Fatalf("Head(2) rows = %d", got)
	}
	if got := ds.Head(10).NumRows(); got != 3 {
		t.Fatalf("Head(10) rows = %d", got)
	}
}
