package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/tablesweep/cli/internal/config"
)

var (
	// Global flags
	cfgFile string
	noColor bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "tablesweep",
	Short: "Tablesweep: clean, summarize and chart tabular datasets",
	Long: `Tablesweep ingests a CSV or Excel dataset, removes missing values,
statistical outliers and duplicate rows, normalizes string fields, lets you
apply optional transformations interactively, then exports the result and
reports summary statistics and charts.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tablesweep/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
	if rootCmd.PersistentFlags().Changed("no-color") {
		cfg.NoColor = noColor
	}
}

// activeConfig returns the loaded configuration, or defaults when loading
// failed or has not run.
func activeConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return &cfgpkg.Global{
		DatasetDir:    "Dataset",
		OutputDir:     "Cleaned_Dataset",
		ChartsDir:     "Charts",
		ChartWidthIn:  6,
		ChartHeightIn: 4,
		NoColor:       noColor,
	}
}
