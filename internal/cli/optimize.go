package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firegrid/firegrid/pkg/pipeline"
)

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		catalogPath string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "optimize [project.yaml]",
		Short: "Find the minimum compliant wire gauge per circuit",
		Long: `Find the minimum compliant wire gauge per circuit.

The optimizer tries each catalog gauge on every circuit and keeps the
thinnest one that passes all electrical rules. Circuits with no compliant
gauge are reported as unsolvable at their current length and load.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				ProjectPath: args[0],
				CatalogPath: catalogPath,
				Optimize:    true,
			}
			return c.runOptimize(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "site catalog (TOML) merged over the builtin one")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report caching")

	return cmd
}

// runOptimize executes the pipeline with gauge optimization and prints the
// selected gauges.
func (c *CLI) runOptimize(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Optimizing wire gauges...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Optimization failed")
		return err
	}
	spinner.Stop()

	unsolvable := 0
	for _, ckt := range result.Circuits {
		gauges := result.ValidGauges[ckt.ID]
		if len(gauges) == 0 {
			printError("%s: no compliant gauge at %.0f ft with %.3fA load", ckt.ID, ckt.TotalLength, ckt.AlarmCurrent)
			unsolvable++
			continue
		}
		printSuccess("%s: %d AWG %s", ckt.ID, ckt.Wire.GaugeAWG,
			StyleDim.Render(fmt.Sprintf("(drop %.2fV, %.1f%% · also valid: %v)", ckt.MaxVoltageDrop, ckt.DropPercent, gauges)))
	}

	printStats(result.Stats.DeviceCount, result.Stats.CircuitCount, result.CacheInfo.ReportHit)
	if unsolvable > 0 {
		return fmt.Errorf("%d circuits have no compliant gauge", unsolvable)
	}
	return nil
}
