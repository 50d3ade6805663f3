// Package loader reads tabular files into datasets. Readers are selected
// by file extension; unknown extensions are rejected up front so the
// pipeline never starts on an undefined dataset.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tablesweep/cli/internal/dataset"
)

// Reader loads one on-disk format into a dataset.
type Reader interface {
	CanRead(path string) bool
	Read(path, sheet string) (*dataset.Dataset, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

// UnsupportedFormatError reports a file extension no reader handles.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q (supported: .csv, .xlsx)", filepath.Ext(e.Path))
}

// FileReadError reports a path that could not be opened or decoded.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read dataset %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// SheetNotFoundError reports a requested workbook sheet that is absent.
type SheetNotFoundError struct {
	Sheet     string
	Path      string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found in %s (available: %s)",
		e.Sheet, filepath.Base(e.Path), strings.Join(e.Available, ", "))
}

// NeedsSheet reports whether the format at path requires a sheet name.
func NeedsSheet(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

// Load selects a reader for path and returns the loaded dataset. The sheet
// argument is only consulted by workbook formats.
func Load(path, sheet string) (*dataset.Dataset, error) {
	for _, r := range registry {
		if r.CanRead(path) {
			return r.Read(path, sheet)
		}
	}
	return nil, &UnsupportedFormatError{Path: path}
}
