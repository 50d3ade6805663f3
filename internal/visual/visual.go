// Package visual renders charts for the cleaned dataset. Rendering is
// headless: charts are written as PNG files rather than shown in a window.
package visual

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tablesweep/cli/internal/dataset"
	"github.com/tablesweep/cli/internal/utils"
)

// Kind selects the chart type.
type Kind string

const (
	KindScatter   Kind = "scatter"
	KindHistogram Kind = "histogram"
	KindBoxplot   Kind = "boxplot"
)

// UnsupportedPlotTypeError reports a chart type outside the supported set.
type UnsupportedPlotTypeError struct {
	Kind string
}

func (e *UnsupportedPlotTypeError) Error() string {
	return fmt.Sprintf("invalid plot type %q (supported: scatter, histogram, boxplot)", e.Kind)
}

// ParseKind recognizes the supported chart types, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindScatter:
		return KindScatter, nil
	case KindHistogram:
		return KindHistogram, nil
	case KindBoxplot:
		return KindBoxplot, nil
	}
	return "", &UnsupportedPlotTypeError{Kind: s}
}

// Options controls chart geometry.
type Options struct {
	WidthIn  float64
	HeightIn float64
}

// DefaultOptions returns the standard 6x4 inch canvas.
func DefaultOptions() Options {
	return Options{WidthIn: 6, HeightIn: 4}
}

// DefaultPath derives a chart file name from the source dataset and kind.
func DefaultPath(chartsDir, srcPath string, kind Kind) string {
	base := filepath.Base(srcPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(chartsDir, fmt.Sprintf("%s_%s.png", base, kind))
}

// Render draws the requested chart for columns x and y of d and saves it
// as a PNG at outPath. Column lookups are not pre-validated; an unknown
// name surfaces as a dataset.ColumnNotFoundError.
func Render(d *dataset.Dataset, x, y string, kind Kind, outPath string, opt Options) error {
	if opt.WidthIn <= 0 || opt.HeightIn <= 0 {
		opt = DefaultOptions()
	}
	p := plot.New()
	var err error
	switch kind {
	case KindScatter:
		err = addScatter(p, d, x, y)
	case KindHistogram:
		err = addHistogram(p, d, x)
	case KindBoxplot:
		err = addBoxplots(p, d, x, y)
	default:
		return &UnsupportedPlotTypeError{Kind: string(kind)}
	}
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(outPath)); err != nil {
		return fmt.Errorf("ensure charts dir: %w", err)
	}
	w := vg.Length(opt.WidthIn) * vg.Inch
	h := vg.Length(opt.HeightIn) * vg.Inch
	if err := p.Save(w, h, outPath); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// NonNumericColumnError reports a chart column whose values cannot be
// plotted.
type NonNumericColumnError struct {
	Column string
	Err    error
}

func (e *NonNumericColumnError) Error() string {
	return fmt.Sprintf("column %q is not numeric: %v", e.Column, e.Err)
}

func (e *NonNumericColumnError) Unwrap() error { return e.Err }

func numericValues(d *dataset.Dataset, name string) ([]float64, error) {
	col, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	vals, err := col.Floats()
	if err != nil {
		return nil, &NonNumericColumnError{Column: name, Err: err}
	}
	return vals, nil
}

func addScatter(p *plot.Plot, d *dataset.Dataset, x, y string) error {
	xs, err := numericValues(d, x)
	if err != nil {
		return err
	}
	ys, err := numericValues(d, y)
	if err != nil {
		return err
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	s.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	p.Title.Text = fmt.Sprintf("%s vs %s", y, x)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(s)
	return nil
}

func addHistogram(p *plot.Plot, d *dataset.Dataset, x string) error {
	xs, err := numericValues(d, x)
	if err != nil {
		return err
	}
	h, err := plotter.NewHist(plotter.Values(xs), 16)
	if err != nil {
		return fmt.Errorf("build histogram: %w", err)
	}
	p.Title.Text = "Distribution of " + x
	p.X.Label.Text = x
	p.Y.Label.Text = "count"
	p.Add(h)
	return nil
}

// addBoxplots draws one box per requested column. Requesting the same
// column for x and y draws a single box.
func addBoxplots(p *plot.Plot, d *dataset.Dataset, x, y string) error {
	names := []string{x}
	if y != "" && y != x {
		names = append(names, y)
	}
	labels := make([]string, 0, len(names))
	for i, name := range names {
		vals, err := numericValues(d, name)
		if err != nil {
			return err
		}
		b, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(vals))
		if err != nil {
			return fmt.Errorf("build boxplot: %w", err)
		}
		p.Add(b)
		labels = append(labels, name)
	}
	p.Title.Text = "Boxplot of " + strings.Join(labels, ", ")
	p.NominalX(labels...)
	return nil
}
