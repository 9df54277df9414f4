package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firegrid/firegrid/pkg/pipeline"
)

// coverageCommand creates the detector coverage command.
func (c *CLI) coverageCommand() *cobra.Command {
	var (
		catalogPath string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "coverage [project.yaml]",
		Short: "Analyze detector coverage per room",
		Long: `Analyze detector coverage per room.

Each room's declared area is compared against the listed coverage of the
detection devices placed in it. Rooms below full coverage get device-level
gap details and placement recommendations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{ProjectPath: args[0], CatalogPath: catalogPath}
			return c.runCoverage(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "site catalog (TOML) merged over the builtin one")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report caching")

	return cmd
}

// runCoverage executes the pipeline and prints per-room coverage.
func (c *CLI) runCoverage(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	if len(result.Coverage) == 0 {
		printWarning("Project declares no rooms; nothing to analyze")
		return nil
	}

	printCoverage(result)

	short := 0
	for _, a := range result.Coverage {
		if !a.Covered() {
			short++
		}
	}
	printNewline()
	if short == 0 {
		printSuccess("All %d rooms fully covered", len(result.Coverage))
		return nil
	}
	printWarning("%d of %d rooms below full coverage", short, len(result.Coverage))
	return nil
}
