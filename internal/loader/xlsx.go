package loader

import (
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tablesweep/cli/internal/dataset"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

func (xlsxReader) Read(path, sheet string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &FileReadError{Path: path, Err: errors.New("workbook has no sheets")}
	}
	if sheet == "" {
		sheet = sheets[0]
	}
	found := false
	for _, s := range sheets {
		if strings.EqualFold(s, sheet) {
			sheet = s
			found = true
			break
		}
	}
	if !found {
		return nil, &SheetNotFoundError{Sheet: sheet, Path: path, Available: sheets}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &FileReadError{Path: path, Err: errors.New("sheet is empty")}
	}
	return dataset.New(rows[0], rows[1:]), nil
}
