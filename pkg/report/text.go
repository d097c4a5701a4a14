package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/plreport/plreport/pkg/classify"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "plreport: %d tests, %d passed, %d failed, %d errors\n",
		report.Summary.Tests,
		report.Summary.Passed,
		report.Summary.Failed,
		report.Summary.Errors)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	if report.Metadata.SuiteName != "" {
		fmt.Fprintf(w, "=== %s ===\n\n", report.Metadata.SuiteName)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Test", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, tc := range report.Cases {
		table.Append([]string{tc.Name, string(tc.Status)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", report.Summary.Tests),
		fmt.Sprintf("%d failed, %d errors", report.Summary.Failed, report.Summary.Errors),
	})

	table.Render()
	fmt.Fprintln(w)

	// Failure detail
	for _, tc := range report.Cases {
		if tc.Status == classify.StatusPassed {
			continue
		}
		if tc.Detail == "" {
			continue
		}
		fmt.Fprintf(w, "--- %s (%s)\n", tc.Name, tc.Status)
		detail := strings.TrimRight(tc.Detail, "\n")
		for _, line := range strings.Split(detail, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		fmt.Fprintln(w)
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Lines processed: %d\n", report.Summary.LinesProcessed)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}
