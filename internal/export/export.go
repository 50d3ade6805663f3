// Package export writes the final dataset back to disk as CSV or Excel
// and records a run report alongside it.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tablesweep/cli/internal/dataset"
	"github.com/tablesweep/cli/internal/utils"
)

// Format is a supported export format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// SheetName is the single sheet written into Excel exports.
const SheetName = "Sheet1"

// ParseFormat recognizes "csv" and "excel", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "excel":
		return FormatExcel, nil
	}
	return "", fmt.Errorf("unsupported export format %q (use csv or excel)", s)
}

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	if f == FormatExcel {
		return ".xlsx"
	}
	return ".csv"
}

// CleanPath derives the export path: the source file's base name with a
// _clean suffix and the format's extension, inside outputDir.
func CleanPath(outputDir, srcPath string, f Format) string {
	base := filepath.Base(srcPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, base+"_clean"+f.Ext())
}

// Write stores d at path in the given format, creating the parent
// directory if needed.
func Write(d *dataset.Dataset, path string, f Format) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}
	switch f {
	case FormatCSV:
		return writeCSV(d, path)
	case FormatExcel:
		return writeXLSX(d, path)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

func writeCSV(d *dataset.Dataset, path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(d.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < d.NumRows(); i++ {
		if err := w.Write(d.Row(i)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func writeXLSX(d *dataset.Dataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	if f.GetSheetName(0) != SheetName {
		if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
			return fmt.Errorf("name sheet: %w", err)
		}
	}
	header := make([]any, d.NumCols())
	for j, name := range d.Names() {
		header[j] = name
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	numeric := make([]bool, d.NumCols())
	for j := range d.Columns {
		numeric[j] = d.Columns[j].Kind() == dataset.KindNumeric
	}
	for i := 0; i < d.NumRows(); i++ {
		row := make([]any, d.NumCols())
		for j := range d.Columns {
			cell := d.Columns[j].Cells[i]
			if numeric[j] {
				if v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
					row[j] = v
					continue
				}
			}
			row[j] = cell
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell address: %w", err)
		}
		if err := f.SetSheetRow(SheetName, addr, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
