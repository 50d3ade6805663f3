package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tablesweep/cli/internal/cleaner"
	cfgpkg "github.com/tablesweep/cli/internal/config"
	"github.com/tablesweep/cli/internal/console"
	"github.com/tablesweep/cli/internal/dataset"
	"github.com/tablesweep/cli/internal/export"
	"github.com/tablesweep/cli/internal/loader"
	"github.com/tablesweep/cli/internal/stats"
	"github.com/tablesweep/cli/internal/transform"
	"github.com/tablesweep/cli/internal/visual"
)

var cleanSheet string

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Interactively clean a dataset, export it, and chart the result",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := ""
		if len(args) == 1 {
			file = args[0]
		}
		return runClean(file, cleanSheet, os.Stdin, os.Stdout, activeConfig())
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanSheet, "sheet", "", "Excel sheet name (prompted when omitted)")
	rootCmd.AddCommand(cleanCmd)
}

// runClean drives the whole pipeline: load, clean, interactive menu,
// export, summary statistics, visualization. The input reader and output
// writer are injected so the flow is testable end to end.
func runClean(fileArg, sheet string, in io.Reader, out io.Writer, cfg *cfgpkg.Global) error {
	con := console.New(in, out, cfg.NoColor)

	con.Section("Welcome to Tablesweep!")
	con.Info("Note: dataset files are read from %q (see config).", cfg.DatasetDir)

	fileName := fileArg
	if fileName == "" {
		var err error
		fileName, err = con.Prompt("Begin by entering your dataset's file name (incl. '.csv' or '.xlsx'):")
		if err != nil {
			return err
		}
	}
	path := resolveDatasetPath(cfg.DatasetDir, fileName)

	if loader.NeedsSheet(path) && sheet == "" {
		var err error
		sheet, err = con.Prompt("Specify sheet name:")
		if err != nil {
			return err
		}
	}

	// A load failure halts the pipeline; nothing downstream can run on an
	// undefined dataset.
	ds, err := loader.Load(path, sheet)
	if err != nil {
		return err
	}
	con.Info("\nDataset was successfully loaded.")
	con.Success("Number of rows in the dataset: %d", ds.NumRows())

	con.Section("Data Preprocessing")
	cleaned, rep := cleaner.Clean(ds)
	con.Info("\nRows with missing values have been removed (%d)", rep.MissingRemoved)
	con.Info("\nOutliers have been removed (%d)", rep.OutliersRemoved)
	con.Info("\nDuplicate rows have been removed (%d)", rep.DuplicatesRemoved)
	if len(rep.NormalizedColumns) > 0 {
		con.Info("\nString columns normalized: %s", strings.Join(rep.NormalizedColumns, ", "))
	}
	con.Success("\nUpdated number of rows in the dataset: %d", cleaned.NumRows())
	con.Error("Number of rows removed: %d", rep.TotalRemoved())

	report := export.NewRunReport(path)
	report.Cleaning = rep

	con.Info("\nHere are optional operations you can conduct on the dataset or choose to finish preprocessing.")
	session := transform.NewSession(con, cleaned, path, cfg.OutputDir, report)
	final, err := session.Run()
	if err != nil {
		return err
	}

	con.Section("Statistical Summaries")
	summary, err := stats.Describe(final)
	if err != nil {
		return err
	}
	con.Info("\nStatistical summaries of numeric columns:")
	summary.Render(con.Out())

	con.Section("Visualization")
	con.Info("\nPreview of dataset:")
	preview := final.Head(5)
	con.Table(preview.Names(), preview.Rows())
	con.Info("\nList of features:")
	con.Data("%s", strings.Join(final.Names(), ", "))

	return promptAndRender(con, final, path, cfg)
}

// promptAndRender collects chart kind and columns, re-prompting on
// invalid plot types and unknown columns instead of crashing.
func promptAndRender(con *console.Console, d *dataset.Dataset, srcPath string, cfg *cfgpkg.Global) error {
	for {
		kindLine, err := con.Prompt("What kind of visual would you like to generate? (choices: 'scatter', 'histogram', 'boxplot'):")
		if err != nil {
			return err
		}
		kind, err := visual.ParseKind(kindLine)
		if err != nil {
			con.Error("%v", err)
			continue
		}
		x, err := con.Prompt("What feature would you like to use for x:")
		if err != nil {
			return err
		}
		y, err := con.Prompt("What feature would you like to use for y:")
		if err != nil {
			return err
		}
		outPath := visual.DefaultPath(cfg.ChartsDir, srcPath, kind)
		opt := visual.Options{WidthIn: cfg.ChartWidthIn, HeightIn: cfg.ChartHeightIn}
		if err := visual.Render(d, x, y, kind, outPath, opt); err != nil {
			var nf *dataset.ColumnNotFoundError
			var up *visual.UnsupportedPlotTypeError
			var nn *visual.NonNumericColumnError
			if errors.As(err, &nf) || errors.As(err, &up) || errors.As(err, &nn) {
				con.Error("%v", err)
				continue
			}
			return fmt.Errorf("render chart: %w", err)
		}
		con.Success("\nChart written to %s", outPath)
		return nil
	}
}

// resolveDatasetPath joins bare file names with the configured dataset
// directory; explicit paths are used as given.
func resolveDatasetPath(datasetDir, fileName string) string {
	if filepath.IsAbs(fileName) || strings.ContainsRune(fileName, os.PathSeparator) {
		return fileName
	}
	return filepath.Join(datasetDir, fileName)
}
