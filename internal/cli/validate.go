package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firegrid/firegrid/pkg/pipeline"
	"github.com/firegrid/firegrid/pkg/report"
	"github.com/firegrid/firegrid/pkg/rules"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		catalogPath string
		noCache     bool
		refresh     bool
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "validate [project.yaml]",
		Short: "Check a system design for code violations",
		Long: `Check a system design for code violations.

The validate command loads a project file, calculates voltage drop on every
circuit, analyzes detector coverage per room, and evaluates the full NFPA 72
rule set. Findings are printed grouped by severity.

The command exits non-zero when the system is non-compliant. With --strict,
warnings also fail the run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				ProjectPath: args[0],
				CatalogPath: catalogPath,
				Refresh:     refresh,
			}
			return c.runValidate(cmd.Context(), opts, noCache, strict)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "site catalog (TOML) merged over the builtin one")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute the report even if cached")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as failures")

	return cmd
}

// runValidate executes the pipeline and prints findings grouped by severity.
func (c *CLI) runValidate(ctx context.Context, opts pipeline.Options, noCache, strict bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Validating system...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Validation failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("validated %d circuits", result.Stats.CircuitCount))

	printFindings(result)

	rep := result.Report
	crit, viol, warn := rep.Counts()
	switch {
	case rep.OverallStatus == report.StatusCompliant && (!strict || warn == 0):
		printSuccess("System is %s (%.1f%%)", rep.OverallStatus, rep.CompliancePercent)
	case rep.OverallStatus == report.StatusCompliant:
		printWarning("System is %s with %d warnings (%.1f%%)", rep.OverallStatus, warn, rep.CompliancePercent)
		return fmt.Errorf("%d warnings in strict mode", warn)
	default:
		printError("System is %s (%.1f%%)", rep.OverallStatus, rep.CompliancePercent)
		return fmt.Errorf("%d critical, %d violations", crit, viol)
	}
	printStats(result.Stats.DeviceCount, result.Stats.CircuitCount, result.CacheInfo.ReportHit)
	printNextStep("Full report", "firegrid report "+opts.ProjectPath)
	return nil
}

// printFindings prints the report's findings grouped by severity.
func printFindings(result *pipeline.Result) {
	rep := result.Report
	groups := []struct {
		title    string
		findings []rules.Violation
	}{
		{"Critical", rep.Critical},
		{"Violations", rep.Violations},
		{"Warnings", rep.Warnings},
	}

	for _, g := range groups {
		if len(g.findings) == 0 {
			continue
		}
		printNewline()
		fmt.Println(StyleTitle.Render(fmt.Sprintf("%s (%d)", g.title, len(g.findings))))
		for _, v := range g.findings {
			printViolation(v)
		}
	}
	printNewline()
}
