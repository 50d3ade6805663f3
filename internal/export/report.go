package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tablesweep/cli/internal/cleaner"
	"github.com/tablesweep/cli/internal/utils"
)

// RunReport is the audit artifact written next to an exported dataset.
type RunReport struct {
	RunID      string          `yaml:"run_id"`
	Source     string          `yaml:"source"`
	Output     string          `yaml:"output"`
	StartedAt  time.Time       `yaml:"started_at"`
	FinishedAt time.Time       `yaml:"finished_at"`
	Cleaning   *cleaner.Report `yaml:"cleaning"`
	Operations []string        `yaml:"operations,omitempty"`
}

// NewRunReport starts a report for a cleaning run over source.
func NewRunReport(source string) *RunReport {
	return &RunReport{
		RunID:     uuid.NewString(),
		Source:    source,
		StartedAt: time.Now().UTC(),
	}
}

// RecordOperation appends an interactive operation to the report.
func (r *RunReport) RecordOperation(op string) {
	r.Operations = append(r.Operations, op)
}

// WriteReport finalizes the report and writes it as YAML to path.
func (r *RunReport) WriteReport(path string) error {
	r.FinishedAt = time.Now().UTC()
	b, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReportPath derives the report location from an export path.
func ReportPath(exportPath string) string {
	return strings.TrimSuffix(exportPath, filepath.Ext(exportPath)) + ".report.yaml"
}
