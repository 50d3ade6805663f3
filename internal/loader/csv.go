package loader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/tablesweep/cli/internal/dataset"
)

type csvReader struct{}

func (csvReader) CanRead(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".csv")
}

func (csvReader) Read(path, _ string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sniffDelimiter(path)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &FileReadError{Path: path, Err: errors.New("empty file")}
		}
		return nil, &FileReadError{Path: path, Err: err}
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &FileReadError{Path: path, Err: err}
		}
		row := make([]string, len(rec))
		copy(row, rec)
		rows = append(rows, row)
	}
	return dataset.New(header, rows), nil
}

// sniffDelimiter inspects the first line and picks the most frequent
// candidate among ',', ';' and tab. Defaults to ','.
func sniffDelimiter(path string) rune {
	f, err := os.Open(path)
	if err != nil {
		return ','
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return ','
	}
	line := sc.Text()
	best, bestCount := ',', strings.Count(line, ",")
	if n := strings.Count(line, ";"); n > bestCount {
		best, bestCount = ';', n
	}
	if n := strings.Count(line, "\t"); n > bestCount {
		best = '\t'
	}
	return best
}
