// Package report provides report assembly and output generation for
// classified test results.
package report

import (
	"time"

	"github.com/plreport/plreport/pkg/classify"
)

// Report is the complete run output.
type Report struct {
	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`

	// Cases contains every finalized test case in discovery order.
	Cases []classify.TestCase `json:"cases"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate counts over all cases.
type Summary struct {
	// Tests is the total number of finalized cases.
	Tests int `json:"tests"`

	// Passed is the number of passing cases.
	Passed int `json:"passed"`

	// Failed is the number of failed cases.
	Failed int `json:"failed"`

	// Errors is the number of compiler-error cases.
	Errors int `json:"errors"`

	// LinesProcessed is the total number of input lines consumed.
	LinesProcessed int `json:"lines_processed"`
}

// Metadata provides context about the run.
type Metadata struct {
	// SuiteName is an optional name attached to the emitted test suite.
	SuiteName string `json:"suite_name,omitempty"`

	// Sources lists the inputs the lines came from (file paths or "stdin").
	Sources []string `json:"sources,omitempty"`

	// GeneratedAt is when the report was assembled.
	GeneratedAt time.Time `json:"generated_at"`

	// Duration is how long classification took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from a classification result.
func NewReport(result *classify.Result, meta Metadata) *Report {
	return &Report{
		Summary: Summary{
			Tests:          result.Tests(),
			Passed:         result.Passed,
			Failed:         result.Failed,
			Errors:         result.Errors,
			LinesProcessed: result.LinesProcessed,
		},
		Cases:    result.Cases,
		Metadata: meta,
	}
}

// HasFailures returns true if any case failed or errored.
func (r *Report) HasFailures() bool {
	return r.Summary.Failed > 0 || r.Summary.Errors > 0
}
