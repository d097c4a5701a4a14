package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/plreport/plreport/pkg/runner"
)

// RunOptions holds command-line options for the run command.
type RunOptions struct {
	InputsDir string
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <suffix> -- <command> [args...]",
		Short: "Run a command over a batch of regression inputs",
		Long: `Run a command once for every input file named inputs/*.<suffix>,
in lexicographic filename order.

For each input file the command is invoked with two extra arguments
appended: the input file and its expected-output file (the input path
with .<suffix> replaced by .expected). Each invocation is echoed before
it runs. The batch stops at the first non-zero exit status, which is
propagated as the overall exit code.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.InputsDir, "inputs", runner.DefaultInputsDir, "Directory searched for input files")

	return cmd
}

func runRun(cmd *cobra.Command, args []string, opts *RunOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	r, err := runner.New(runner.Options{
		Suffix:    args[0],
		Command:   args[1:],
		InputsDir: opts.InputsDir,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}, logger)
	if err != nil {
		return err
	}

	code, err := r.Run(ctx)
	if err != nil {
		return err
	}

	ExitCode = code
	return nil
}
