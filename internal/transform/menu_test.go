package transform_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tablesweep/cli/internal/console"
	"github.com/tablesweep/cli/internal/dataset"
	"github.com/tablesweep/cli/internal/export"
	"github.com/tablesweep/cli/internal/loader"
	"github.com/tablesweep/cli/internal/transform"
)

func sample() *dataset.Dataset {
	return dataset.New([]string{"age", "score", "name"}, [][]string{
		{"25", "-5", "alice"},
		{"30", "3", "bob"},
	})
}

// runSession scripts the menu with the given input lines and returns the
// final dataset, session, and captured output.
func runSession(t *testing.T, d *dataset.Dataset, outputDir string, lines ...string) (*dataset.Dataset, *transform.Session, string) {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	con := console.New(in, &out, true)
	rep := export.NewRunReport("Dataset/people.csv")
	sess := transform.NewSession(con, d, "Dataset/people.csv", outputDir, rep)
	final, err := sess.Run()
	if err != nil {
		t.Fatalf("session: %v\noutput:\n%s", err, out.String())
	}
	return final, sess, out.String()
}

func TestFinishExportsCSV(t *testing.T) {
	dir := t.TempDir()
	final, sess, _ := runSession(t, sample(), dir, "0", "csv")
	if sess.State() != transform.StateExported {
		t.Fatalf("state = %v", sess.State())
	}
	want := filepath.Join(dir, "people_clean.csv")
	if sess.ExportedPath != want {
		t.Fatalf("exported path = %q, want %q", sess.ExportedPath, want)
	}
	back, err := loader.Load(want, "")
	if err != nil {
		t.Fatalf("reload export: %v", err)
	}
	if !back.Equal(final) {
		t.Fatal("exported file does not match final dataset")
	}
	if _, err := os.Stat(export.ReportPath(want)); err != nil {
		t.Fatalf("run report missing: %v", err)
	}
}

func TestZeroNegatives(t *testing.T) {
	dir := t.TempDir()
	final, _, _ := runSession(t, sample(), dir, "1", "0", "csv")
	score, err := final.Column("score")
	if err != nil {
		t.Fatal(err)
	}
	if score.Cells[0] != "0" {
		t.Fatalf("negative not zeroed: %q", score.Cells[0])
	}
	if score.Cells[1] != "3" {
		t.Fatalf("non-negative changed: %q", score.Cells[1])
	}
	// min of every numeric column is now >= 0
	for _, name := range final.NumericColumns() {
		col, _ := final.Column(name)
		vals, err := col.Floats()
		if err != nil {
			t.Fatal(err)
		}
		for _, v := range vals {
			if v < 0 {
				t.Fatalf("column %q still has negative %v", name, v)
			}
		}
	}
}

func TestZeroNegativesSkipsTextColumns(t *testing.T) {
	ds := dataset.New([]string{"note"}, [][]string{{"-5 degrees"}})
	if n := transform.ZeroNegatives(ds); n != 0 {
		t.Fatalf("changed %d cells in text column", n)
	}
	if ds.Columns[0].Cells[0] != "-5 degrees" {
		t.Fatal("text cell rewritten")
	}
}

func TestDropColumn(t *testing.T) {
	dir := t.TempDir()
	final, _, _ := runSession(t, sample(), dir, "2", "score", "0", "csv")
	if _, ok := final.ColumnIndex("score"); ok {
		t.Fatal("score column still present")
	}
	if final.NumRows() != 2 {
		t.Fatalf("row count changed: %d", final.NumRows())
	}
	age, err := final.Column("age")
	if err != nil {
		t.Fatal(err)
	}
	if age.Cells[0] != "25" || age.Cells[1] != "30" {
		t.Fatalf("other columns changed: %v", age.Cells)
	}
}

func TestDropUnknownColumnReportsAndContinues(t *testing.T) {
	dir := t.TempDir()
	final, _, out := runSession(t, sample(), dir, "2", "salary", "0", "csv")
	if final.NumCols() != 3 {
		t.Fatalf("dataset mutated by failed drop: %v", final.Names())
	}
	if !strings.Contains(out, "not found") {
		t.Fatalf("missing error report in output:\n%s", out)
	}
}

func TestInvalidMenuChoiceReprompts(t *testing.T) {
	dir := t.TempDir()
	_, sess, out := runSession(t, sample(), dir, "abc", "9", "0", "csv")
	if sess.State() != transform.StateExported {
		t.Fatalf("state = %v", sess.State())
	}
	if strings.Count(out, "Invalid choice") != 2 {
		t.Fatalf("expected two invalid-choice reports:\n%s", out)
	}
}

func TestInvalidExportFormatReprompts(t *testing.T) {
	dir := t.TempDir()
	_, sess, out := runSession(t, sample(), dir, "0", "parquet", "excel")
	if sess.State() != transform.StateExported {
		t.Fatalf("state = %v", sess.State())
	}
	if !strings.Contains(out, "Invalid choice") {
		t.Fatalf("missing format error:\n%s", out)
	}
	if !strings.HasSuffix(sess.ExportedPath, "people_clean.xlsx") {
		t.Fatalf("exported path = %q", sess.ExportedPath)
	}
}

func TestInputClosedBeforeExport(t *testing.T) {
	in := strings.NewReader("1\n")
	var out bytes.Buffer
	con := console.New(in, &out, true)
	rep := export.NewRunReport("people.csv")
	sess := transform.NewSession(con, sample(), "people.csv", t.TempDir(), rep)
	if _, err := sess.Run(); err == nil {
		t.Fatal("expected error when input ends before export")
	}
}

func TestSessionDoesNotMutateInput(t *testing.T) {
	dir := t.TempDir()
	ds := sample()
	before := ds.Clone()
	_, _, _ = runSession(t, ds, dir, "1", "2", "name", "0", "csv")
	if !ds.Equal(before) {
		t.Fatal("session mutated the caller's dataset")
	}
}
