// Package transform drives the interactive post-cleaning menu: a blocking
// read-eval loop that only terminates once the dataset has been exported.
package transform

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tablesweep/cli/internal/console"
	"github.com/tablesweep/cli/internal/dataset"
	"github.com/tablesweep/cli/internal/export"
)

// State is the menu's position in its loop.
type State int

const (
	StateAwaitingChoice State = iota
	StateAwaitingExportFormat
	StateExported
)

const menuText = "\nEnter 0: Finish cleaning dataset\n" +
	"Enter 1: Convert negative values to 0\n" +
	"Enter 2: Remove a specific feature (column)"

// Session owns the working dataset while the user applies optional
// operations. The input source comes from the console, so the whole loop
// runs against scripted input in tests.
type Session struct {
	con       *console.Console
	ds        *dataset.Dataset
	state     State
	srcPath   string
	outputDir string
	report    *export.RunReport

	// ExportedPath is set once the finish branch has written the dataset.
	ExportedPath string
}

// NewSession copies d into a working dataset for the menu loop.
func NewSession(con *console.Console, d *dataset.Dataset, srcPath, outputDir string, report *export.RunReport) *Session {
	return &Session{
		con:       con,
		ds:        d.Clone(),
		state:     StateAwaitingChoice,
		srcPath:   srcPath,
		outputDir: outputDir,
		report:    report,
	}
}

// State returns the session's current state.
func (s *Session) State() State { return s.state }

// Run blocks until the user finishes and the dataset is exported, then
// returns the final dataset. Exhausted input before export is an error.
func (s *Session) Run() (*dataset.Dataset, error) {
	for s.state != StateExported {
		var err error
		switch s.state {
		case StateAwaitingChoice:
			err = s.stepChoice()
		case StateAwaitingExportFormat:
			err = s.stepExportFormat()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("input closed before the dataset was exported")
			}
			return nil, err
		}
	}
	return s.ds, nil
}

func (s *Session) stepChoice() error {
	line, err := s.con.Prompt(menuText)
	if err != nil {
		return err
	}
	choice, err := strconv.Atoi(line)
	if err != nil {
		s.con.Error("\nInvalid choice, try again.\n")
		return nil
	}
	switch choice {
	case 0:
		s.state = StateAwaitingExportFormat
	case 1:
		n := ZeroNegatives(s.ds)
		s.report.RecordOperation(fmt.Sprintf("zero_negatives: %d cells set to 0", n))
		s.con.Info("\nNegative values have been converted to 0 (%d cells)", n)
	case 2:
		if err := s.stepDropColumn(); err != nil {
			return err
		}
	default:
		s.con.Error("\nInvalid choice, try again.\n")
	}
	return nil
}

func (s *Session) stepDropColumn() error {
	s.con.Info("These are the features in your dataset:")
	s.con.Data("%s", strings.Join(s.ds.Names(), ", "))
	name, err := s.con.Prompt("Which feature would you like to remove from the dataset?")
	if err != nil {
		return err
	}
	if err := s.ds.DropColumn(name); err != nil {
		var nf *dataset.ColumnNotFoundError
		if errors.As(err, &nf) {
			s.con.Error("\n%v, try again.\n", nf)
			return nil
		}
		return err
	}
	s.report.RecordOperation("drop_column: " + name)
	s.con.Info("\nFeature %q has been removed", name)
	return nil
}

func (s *Session) stepExportFormat() error {
	line, err := s.con.Prompt("Would you like your dataset in csv or excel format?\nEnter csv or excel:")
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(line)
	if err != nil {
		s.con.Error("\nInvalid choice, try again.\n")
		return nil
	}
	path := export.CleanPath(s.outputDir, s.srcPath, format)
	if err := export.Write(s.ds, path, format); err != nil {
		return fmt.Errorf("export dataset: %w", err)
	}
	s.report.Output = path
	if err := s.report.WriteReport(export.ReportPath(path)); err != nil {
		return err
	}
	s.ExportedPath = path
	s.state = StateExported
	s.con.Success("\nCleaned dataset written to %s", path)
	return nil
}

// ZeroNegatives replaces every strictly negative value in every numeric
// column with zero, in place. Returns the number of cells changed.
func ZeroNegatives(d *dataset.Dataset) int {
	changed := 0
	for j := range d.Columns {
		col := &d.Columns[j]
		if col.Kind() != dataset.KindNumeric {
			continue
		}
		for i, cell := range col.Cells {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				continue
			}
			if v < 0 {
				col.Cells[i] = "0"
				changed++
			}
		}
	}
	return changed
}
