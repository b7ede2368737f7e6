package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ReportName is the file name of the run report written next to the splits.
const ReportName = "run_report.json"

// RunReport records what one prepare run did, so a dataset can be traced
// back to its seed and counts.
type RunReport struct {
	RunID      string              `json:"run_id"`
	StartedAt  time.Time           `json:"started_at"`
	Seed       int64               `json:"seed"`
	SelectData string              `json:"select_data"`
	Counts     Counts              `json:"counts"`
	Splits     map[string]*Summary `json:"splits"`

	// EvaluationCopied is the number of evaluation pages copied, if any.
	EvaluationCopied int `json:"evaluation_copied,omitempty"`
}

// NewRunReport starts a report with a fresh run id.
func NewRunReport(seed int64, selectData string, counts Counts) *RunReport {
	return &RunReport{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		Seed:       seed,
		SelectData: selectData,
		Counts:     counts,
		Splits:     make(map[string]*Summary),
	}
}

// Record stores the summary of one split.
func (r *RunReport) Record(s *Summary) {
	r.Splits[s.Split] = s
}

// Write saves the report as indented JSON at path.
func (r *RunReport) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}
	return nil
}
