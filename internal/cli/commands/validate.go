package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plreport/plreport/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a plreport configuration file without processing any input.

Checks:
  - YAML syntax
  - Output format value
  - Webhook URLs and trigger values`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Report what we found
	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Output:   %s\n", cfg.Output)
	fmt.Printf("  Format:   %s\n", cfg.Format)
	if cfg.SuiteName != "" {
		fmt.Printf("  Suite:    %s\n", cfg.SuiteName)
	}
	fmt.Printf("  Webhooks: %d\n", len(cfg.Webhooks))

	for i, wh := range cfg.Webhooks {
		name := wh.Name
		if name == "" {
			name = wh.URL
		}
		fmt.Printf("  %d. %s (trigger: %s)\n", i+1, name, wh.Trigger)
	}

	return nil
}
