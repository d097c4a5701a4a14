// Package runner executes a command over a batch of regression input files,
// pairing each input with its expected-output file.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"

	"github.com/plreport/plreport/pkg/parser"
)

// DefaultInputsDir is where input files are discovered.
const DefaultInputsDir = "inputs"

// Step is one batch invocation: an input file and its expected-output file.
type Step struct {
	// Input is the discovered input file path.
	Input string

	// Expected is the matching expected-output file path.
	Expected string
}

// Options configures a batch run.
type Options struct {
	// Suffix selects input files named <InputsDir>/*.<Suffix>.
	Suffix string

	// Command is the program and arguments to invoke for each input.
	// The input and expected file paths are appended to it.
	Command []string

	// InputsDir is the directory searched for inputs (default "inputs").
	InputsDir string

	// Stdout and Stderr receive the child process output.
	Stdout io.Writer
	Stderr io.Writer
}

// Runner runs a command over every discovered input file in lexicographic
// order, stopping at the first non-zero exit status.
type Runner struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a runner. The suffix and command are required.
func New(opts Options, logger zerolog.Logger) (*Runner, error) {
	if opts.Suffix == "" {
		return nil, errors.New("suffix is required")
	}
	if len(opts.Command) == 0 {
		return nil, errors.New("command is required")
	}
	if opts.InputsDir == "" {
		opts.InputsDir = DefaultInputsDir
	}
	return &Runner{opts: opts, logger: logger}, nil
}

// Discover finds the input files and pairs each with its expected-output
// file. Steps are returned in lexicographic filename order.
func (r *Runner) Discover() ([]Step, error) {
	pattern := filepath.Join(r.opts.InputsDir, "*."+r.opts.Suffix)
	files, err := parser.ExpandGlobs([]string{pattern})
	if err != nil {
		return nil, fmt.Errorf("discovering input files: %w", err)
	}

	steps := make([]Step, 0, len(files))
	for _, f := range files {
		if f == pattern {
			// ExpandGlobs returns unmatched patterns as literals
			continue
		}
		steps = append(steps, Step{
			Input:    f,
			Expected: ExpectedFile(f, r.opts.Suffix),
		})
	}
	return steps, nil
}

// ExpectedFile returns the expected-output path for an input file:
// the input with its .<suffix> extension replaced by .expected.
func ExpectedFile(input, suffix string) string {
	return strings.TrimSuffix(input, "."+suffix) + ".expected"
}

// Run executes the command for every discovered input in order, echoing
// each invocation, and stops at the first non-zero exit status. The
// returned int is the overall exit code to propagate.
func (r *Runner) Run(ctx context.Context) (int, error) {
	steps, err := r.Discover()
	if err != nil {
		return 2, err
	}
	if len(steps) == 0 {
		return 2, fmt.Errorf("no input files matched %s",
			filepath.Join(r.opts.InputsDir, "*."+r.opts.Suffix))
	}

	r.logger.Debug().
		Int("steps", len(steps)).
		Str("suffix", r.opts.Suffix).
		Msg("Starting batch run")

	for i, step := range steps {
		if i > 0 {
			fmt.Fprintln(r.opts.Stdout)
		}

		args := make([]string, 0, len(r.opts.Command)+1)
		args = append(args, r.opts.Command[1:]...)
		args = append(args, step.Input, step.Expected)

		full := append([]string{r.opts.Command[0]}, args...)
		fmt.Fprintln(r.opts.Stdout, shellescape.QuoteCommand(full))

		code, err := r.runStep(ctx, r.opts.Command[0], args)
		if err != nil {
			return 2, err
		}
		if code != 0 {
			r.logger.Debug().
				Str("input", step.Input).
				Int("exit_code", code).
				Msg("Step failed, stopping batch")
			return code, nil
		}
	}

	return 0, nil
}

func (r *Runner) runStep(ctx context.Context, name string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.opts.Stdout
	cmd.Stderr = r.opts.Stderr

	if err := cmd.Run(); err != nil {
		// Non-zero exits are expected; anything else is a real failure
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("running %s: %w", name, err)
	}
	return 0, nil
}
