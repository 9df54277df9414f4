package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/firegrid/firegrid/pkg/battery"
	"github.com/firegrid/firegrid/pkg/pipeline"
)

// reportCommand creates the report command.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		catalogPath string
		output      string
		noCache     bool
		refresh     bool
		optimize    bool
		withBattery bool
	)

	cmd := &cobra.Command{
		Use:   "report [project.yaml]",
		Short: "Generate a full compliance report",
		Long: `Generate a full compliance report.

The report command runs the complete pipeline: circuit electrical
calculations, detector coverage analysis, optional wire-gauge optimization
and battery sizing, and the NFPA 72 rule evaluation. The aggregated report
includes a compliance percentage and findings grouped by severity.

Reports are cached locally; identical systems reuse the cached result.
Use --refresh to force recomputation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				ProjectPath: args[0],
				CatalogPath: catalogPath,
				Optimize:    optimize,
				Refresh:     refresh,
			}
			if withBattery {
				opts.Battery = &battery.Input{}
			}
			return c.runReport(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report as JSON to this file")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "site catalog (TOML) merged over the builtin one")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute the report even if cached")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "find the minimum compliant wire gauge per circuit")
	cmd.Flags().BoolVar(&withBattery, "battery", false, "size standby batteries from panel loads")

	return cmd
}

// runReport executes the pipeline and prints the full report.
func (c *CLI) runReport(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Generating report...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Report failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("report for %d devices", result.Stats.DeviceCount))

	rep := result.Report
	crit, viol, warn := rep.Counts()

	fmt.Println(StyleTitle.Render("Compliance Report"))
	printKeyValue("Status", rep.OverallStatus)
	printKeyValue("Compliance", fmt.Sprintf("%.1f%%", rep.CompliancePercent))
	printKeyValue("Checks", fmt.Sprintf("%d", rep.TotalChecks))
	printKeyValue("Findings", fmt.Sprintf("%d critical · %d violations · %d warnings", crit, viol, warn))
	printKeyValue("Generated", rep.GeneratedAt.Format("2006-01-02 15:04:05"))

	printCircuits(result)
	printCoverage(result)
	printBattery(result)
	printFindings(result)

	printStats(result.Stats.DeviceCount, result.Stats.CircuitCount, result.CacheInfo.ReportHit)

	if output != "" {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		printFile(output)
	}
	return nil
}

// printCircuits prints per-circuit electrical results.
func printCircuits(result *pipeline.Result) {
	if len(result.Circuits) == 0 {
		return
	}
	printNewline()
	fmt.Println(StyleTitle.Render("Circuits"))
	for _, ckt := range result.Circuits {
		status := StyleSuccess.Render(iconSuccess)
		if !ckt.Valid {
			status = StyleViolation.Render(iconError)
		}
		fmt.Printf("  %s %s  %s\n", status, StyleValue.Render(ckt.ID),
			StyleDim.Render(fmt.Sprintf("%s · %d AWG · %.0f ft · drop %.2fV (%.1f%%)",
				ckt.Type, ckt.Wire.GaugeAWG, ckt.TotalLength, ckt.MaxVoltageDrop, ckt.DropPercent)))
		if gauges, ok := result.ValidGauges[ckt.ID]; ok {
			if len(gauges) == 0 {
				printDetail("no compliant gauge exists")
			} else {
				printDetail("compliant gauges: %v", gauges)
			}
		}
	}
}

// printCoverage prints per-room detector coverage.
func printCoverage(result *pipeline.Result) {
	if len(result.Coverage) == 0 {
		return
	}
	rooms := make([]string, 0, len(result.Coverage))
	for id := range result.Coverage {
		rooms = append(rooms, id)
	}
	sort.Strings(rooms)

	printNewline()
	fmt.Println(StyleTitle.Render("Coverage"))
	for _, id := range rooms {
		a := result.Coverage[id]
		style := StyleSuccess
		if !a.Covered() {
			style = StyleWarning
		}
		fmt.Printf("  %s %s\n", StyleValue.Render(id), style.Render(fmt.Sprintf("%.1f%%", a.CoveragePercent)))
		for _, rec := range a.Recommendations {
			printDetail("%s", rec)
		}
	}
}

// printBattery prints the battery sizing breakdown when it ran.
func printBattery(result *pipeline.Result) {
	b := result.Battery
	if b == nil {
		return
	}
	printNewline()
	fmt.Println(StyleTitle.Render("Battery Sizing"))
	printKeyValue("Standby", fmt.Sprintf("%.4f Ah (%.3fA × %.1fh)", b.StandbyAh, b.Input.StandbyCurrent, b.Input.StandbyHours))
	printKeyValue("Alarm", fmt.Sprintf("%.4f Ah (%.3fA × %.2fh)", b.AlarmAh, b.AlarmCurrentCorrected, b.Input.AlarmHours))
	printKeyValue("Derating", fmt.Sprintf("%.2f @ %.0f°F", b.DeratingFactor, b.Input.TemperatureF))
	printKeyValue("Required", fmt.Sprintf("%.1f Ah", b.CapacityAh))
	for _, cfg := range result.BatteryConfigs {
		printDetail("%s", cfg.Description)
	}
}
