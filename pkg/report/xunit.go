package report

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/plreport/plreport/pkg/classify"
)

// xunitSuites is the document root. The failures and errors attributes are
// present only when nonzero; tests is always present.
type xunitSuites struct {
	XMLName  xml.Name     `xml:"testsuites"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr,omitempty"`
	Errors   int          `xml:"errors,attr,omitempty"`
	Suites   []xunitSuite `xml:"testsuite"`
}

type xunitSuite struct {
	Name     string      `xml:"name,attr,omitempty"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr,omitempty"`
	Errors   int         `xml:"errors,attr,omitempty"`
	Cases    []xunitCase `xml:"testcase"`
}

type xunitCase struct {
	Name    string        `xml:"name,attr"`
	Status  string        `xml:"status,attr"`
	Failure *xunitFailure `xml:"failure,omitempty"`
	Error   *xunitError   `xml:"error,omitempty"`
}

type xunitFailure struct {
	Text string `xml:",chardata"`
}

type xunitError struct {
	Text string `xml:",chardata"`
}

// XUnitFormatter renders reports as xunit-style XML for CI dashboards.
type XUnitFormatter struct{}

// NewXUnitFormatter creates an xunit XML formatter.
func NewXUnitFormatter() *XUnitFormatter {
	return &XUnitFormatter{}
}

// Name returns the format name.
func (f *XUnitFormatter) Name() string {
	return "xunit"
}

// Format renders the report as UTF-8 XML with a declaration header.
// Output is deterministic: the same report always serializes to the
// same bytes.
func (f *XUnitFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	doc := buildXUnit(report)

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling xunit report: %w", err)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing xunit report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing xunit report: %w", err)
	}
	return nil
}

func buildXUnit(report *Report) *xunitSuites {
	suite := xunitSuite{
		Name:     report.Metadata.SuiteName,
		Tests:    report.Summary.Tests,
		Failures: report.Summary.Failed,
		Errors:   report.Summary.Errors,
		Cases:    make([]xunitCase, 0, len(report.Cases)),
	}

	for _, tc := range report.Cases {
		c := xunitCase{
			Name:   tc.Name,
			Status: string(tc.Status),
		}
		switch tc.Status {
		case classify.StatusFailed:
			c.Failure = &xunitFailure{Text: tc.Detail}
		case classify.StatusError:
			c.Error = &xunitError{Text: tc.Detail}
		}
		suite.Cases = append(suite.Cases, c)
	}

	return &xunitSuites{
		Tests:    report.Summary.Tests,
		Failures: report.Summary.Failed,
		Errors:   report.Summary.Errors,
		Suites:   []xunitSuite{suite},
	}
}
