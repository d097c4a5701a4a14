// Package classify implements the streaming line classifier that turns
// PL-Unit runner output into test case records.
package classify

// Status is the terminal outcome of a test case.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
	StatusError  Status = "error"
)

// SourceLocation points at the source position of a compiler diagnostic.
type SourceLocation struct {
	// File is the path as it appeared in the diagnostic.
	File string `json:"file"`

	// Line is the 1-based source line number.
	Line int `json:"line"`
}

// TestCase is one named unit of test execution with its final outcome.
// Immutable once finalized.
type TestCase struct {
	// Name is the test name, or a synthesized name for compiler errors.
	Name string `json:"name"`

	// Status is the terminal outcome.
	Status Status `json:"status"`

	// Detail is the raw captured output, present only for failed cases
	// and the message text for compiler-error cases.
	Detail string `json:"detail,omitempty"`

	// SourceLocation is set only for compiler-error cases.
	SourceLocation *SourceLocation `json:"source_location,omitempty"`
}

// Result holds all finalized test cases and the running counters,
// maintained at the moment each event is classified.
type Result struct {
	// Cases in discovery order.
	Cases []TestCase `json:"cases"`

	// Passed is the number of cases that completed without failure.
	Passed int `json:"passed"`

	// Failed is the number of cases downgraded by an in-body error.
	Failed int `json:"failed"`

	// Errors is the number of standalone compiler errors.
	Errors int `json:"errors"`

	// LinesProcessed is the total number of input lines consumed.
	LinesProcessed int `json:"lines_processed"`
}

// Tests returns the total number of finalized cases.
func (r *Result) Tests() int {
	return r.Passed + r.Failed + r.Errors
}

// HasFailures returns true if any case failed or errored.
func (r *Result) HasFailures() bool {
	return r.Failed > 0 || r.Errors > 0
}
