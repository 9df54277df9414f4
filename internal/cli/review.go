package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firegrid/firegrid/pkg/pipeline"
)

// reviewCommand creates the interactive finding browser command.
func (c *CLI) reviewCommand() *cobra.Command {
	var (
		catalogPath string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "review [project.yaml]",
		Short: "Browse findings interactively",
		Long: `Browse findings interactively.

The review command runs the full validation pipeline and opens a terminal
browser over the findings, sorted by severity. Selecting a finding shows its
code section and remediation advice.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{ProjectPath: args[0], CatalogPath: catalogPath}
			return c.runReview(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "site catalog (TOML) merged over the builtin one")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report caching")

	return cmd
}

// runReview executes the pipeline and opens the finding browser.
func (c *CLI) runReview(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Validating system...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Validation failed")
		return err
	}
	spinner.Stop()

	if len(result.Violations) == 0 {
		printSuccess("No findings: system is %s (%.1f%%)", result.Report.OverallStatus, result.Report.CompliancePercent)
		return nil
	}
	return browseFindings(ctx, result)
}
