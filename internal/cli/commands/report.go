package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/plreport/plreport/pkg/classify"
	"github.com/plreport/plreport/pkg/config"
	"github.com/plreport/plreport/pkg/parser"
	"github.com/plreport/plreport/pkg/report"
	"github.com/plreport/plreport/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ReportOptions holds command-line options for the report command.
type ReportOptions struct {
	Config      string
	Output      string
	Format      string
	SuiteName   string
	BaseDir     string
	KeepGoing   bool
	SetExitCode bool
	Verbose     bool
	Quiet       bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report [logfile...]",
		Short: "Convert test runner output into a report",
		Long: `Read PL-Unit test runner output and write a structured test report.

Input is read from stdin by default, or from the given log files in order.
Lines are classified into test case boundaries and outcomes:
  - "% PL-Unit: <name> ... done" on one line is a passing test
  - "% PL-Unit: <name> ..." opens a test; "... done" closes it
  - "ERROR: <file>:<line>:" inside a test marks it failed
  - "ERROR: <file>:<line>:<col>: <msg>" outside a test is a compiler error

By default processing stops at the first standalone compiler error, matching
the behavior CI graders expect; --keep-going continues scanning instead.

Exit codes:
  0 - Report written
  1 - Report written, tests failed (only with --set-exit-code)
  2 - Configuration or runtime error`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Report destination file (default test_detail.xml)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Report format (xunit|json|text)")
	cmd.Flags().StringVar(&opts.SuiteName, "suite-name", "", "Name attached to the emitted test suite")
	cmd.Flags().StringVar(&opts.BaseDir, "base-dir", "", "Directory compiler-error paths are relativized against")
	cmd.Flags().BoolVar(&opts.KeepGoing, "keep-going", false, "Continue after a standalone compiler error")
	cmd.Flags().BoolVar(&opts.SetExitCode, "set-exit-code", false, "Exit 1 if any test failed or errored")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include processing statistics in text output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_failures", "When to fire webhook (on_failures|always|never)")

	return cmd
}

func runReport(cmd *cobra.Command, args []string, opts *ReportOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadReportConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}

	source, sources, err := openSource(args)
	if err != nil {
		return err
	}
	defer source.Close()

	start := time.Now()

	classifier := classify.New(
		classify.WithBaseDir(cfg.BaseDir),
		classify.WithKeepGoing(cfg.KeepGoing),
	)

	if err := consume(ctx, source, classifier); err != nil {
		return err
	}

	result, err := classifier.Finalize(ctx)
	if err != nil {
		return fmt.Errorf("finalizing classification: %w", err)
	}

	logger.Debug().
		Int("tests", result.Tests()).
		Int("failed", result.Failed).
		Int("errors", result.Errors).
		Int("lines", result.LinesProcessed).
		Bool("halted", classifier.Halted()).
		Msg("Classification complete")

	rep := report.NewReport(result, report.Metadata{
		SuiteName:   cfg.SuiteName,
		Sources:     sources,
		GeneratedAt: time.Now(),
		Duration:    time.Since(start),
	})

	formatter, err := report.NewFormatter(cfg.Format, report.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	if err := report.WriteFile(ctx, cfg.Output, formatter, rep); err != nil {
		return err
	}

	if !opts.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d tests, %d failed, %d errors\n",
			cfg.Output, rep.Summary.Tests, rep.Summary.Failed, rep.Summary.Errors)
	}

	if err := sendWebhooks(ctx, cfg, rep); err != nil {
		return err
	}

	if opts.SetExitCode && rep.HasFailures() {
		ExitCode = 1
	}
	return nil
}

// loadReportConfig merges the optional config file with command-line flags.
// Flags that were explicitly set win over config file values.
func loadReportConfig(ctx context.Context, cmd *cobra.Command, opts *ReportOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.Config != "" {
		loaded, err := config.Load(ctx, opts.Config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("output") {
		cfg.Output = opts.Output
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = opts.Format
	}
	if cmd.Flags().Changed("suite-name") {
		cfg.SuiteName = opts.SuiteName
	}
	if cmd.Flags().Changed("base-dir") {
		cfg.BaseDir = opts.BaseDir
	}
	if cmd.Flags().Changed("keep-going") {
		cfg.KeepGoing = opts.KeepGoing
	}

	if opts.WebhookURL != "" {
		cfg.Webhooks = append(cfg.Webhooks, config.WebhookConfig{
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: opts.WebhookTrigger,
		})
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSource builds the line source: stdin when no files are given,
// otherwise the named files (globs allowed) read in order.
func openSource(args []string) (parser.LineSource, []string, error) {
	if len(args) == 0 {
		return parser.NewReaderSource(os.Stdin, "stdin"), []string{"stdin"}, nil
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return nil, nil, fmt.Errorf("expanding log files: %w", err)
	}
	return parser.NewFileSource(files), files, nil
}

// consume drains the source through the classifier. A halt after a
// standalone compiler error is a clean stop, not an error.
func consume(ctx context.Context, source parser.LineSource, classifier *classify.Classifier) error {
	for {
		line, err := source.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		if err := classifier.Process(ctx, line); err != nil {
			if errors.Is(err, classify.ErrHalt) {
				logger.Debug().
					Str("source", line.Source).
					Int("line", line.Num).
					Msg("Stopping at standalone compiler error")
				return nil
			}
			return fmt.Errorf("classifying line %s:%d: %w", line.Source, line.Num, err)
		}
	}
}

// sendWebhooks pushes the report to each configured endpoint whose trigger
// condition is met. Webhook failures are fatal so CI notices them.
func sendWebhooks(ctx context.Context, cfg *config.Config, rep *report.Report) error {
	if len(cfg.Webhooks) == 0 {
		return nil
	}

	client := webhook.NewClient()
	for _, wh := range cfg.Webhooks {
		if !shouldSend(wh.Trigger, rep) {
			continue
		}

		resp := client.Send(ctx, rep, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})
		if !resp.Success() {
			return fmt.Errorf("webhook %s failed: %w", wh.URL, resp.Error)
		}

		logger.Debug().
			Str("url", wh.URL).
			Int("status", resp.StatusCode).
			Dur("duration", resp.Duration).
			Msg("Webhook delivered")
	}
	return nil
}

func shouldSend(trigger string, rep *report.Report) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return rep.HasFailures()
	}
}
