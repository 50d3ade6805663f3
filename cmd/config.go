package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/tablesweep/cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Tablesweep configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		fmt.Printf("dataset_dir: %s\n", c.DatasetDir)
		fmt.Printf("output_dir: %s\n", c.OutputDir)
		fmt.Printf("charts_dir: %s\n", c.ChartsDir)
		fmt.Printf("chart_width_in: %.1f\n", c.ChartWidthIn)
		fmt.Printf("chart_height_in: %.1f\n", c.ChartHeightIn)
		fmt.Printf("no_color: %t\n", c.NoColor)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "dataset_dir":
			cfg.DatasetDir = val
		case "output_dir":
			cfg.OutputDir = val
		case "charts_dir":
			cfg.ChartsDir = val
		case "chart_width_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for chart_width_in: %v", val)
			}
			cfg.ChartWidthIn = f
		case "chart_height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for chart_height_in: %v", val)
			}
			cfg.ChartHeightIn = f
		case "no_color":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for no_color: %v", val)
			}
			cfg.NoColor = b
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("✓ Saved configuration")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
