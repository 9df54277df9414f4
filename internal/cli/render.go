package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firegrid/firegrid/pkg/cache"
	"github.com/firegrid/firegrid/pkg/circuit"
	"github.com/firegrid/firegrid/pkg/observability"
	"github.com/firegrid/firegrid/pkg/pipeline"
	"github.com/firegrid/firegrid/pkg/render"
)

// renderCommand creates the render command for circuit diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		catalogPath string
		circuitID   string
		format      string
		output      string
		detailed    bool
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "render [project.yaml]",
		Short: "Draw circuit diagrams",
		Long: `Draw circuit diagrams.

The render command calculates every circuit in the project and draws each as
a left-to-right wiring diagram: the panel, then every device in wiring order
with its cumulative voltage drop. Devices whose terminal voltage falls below
their minimum are highlighted.

Rendered SVG and PNG output is cached by circuit content, so re-rendering
an unchanged circuit skips the layout engine.

One file is written per circuit, named after the project file, unless
--circuit selects a single circuit and --output names its file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "svg", "png", "dot":
			default:
				return fmt.Errorf("unsupported format %q (svg, png, dot)", format)
			}
			opts := pipeline.Options{ProjectPath: args[0], CatalogPath: catalogPath}
			return c.runRender(cmd.Context(), opts, circuitID, format, output, detailed, noCache)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "site catalog (TOML) merged over the builtin one")
	cmd.Flags().StringVar(&circuitID, "circuit", "", "render only this circuit")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), png, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single circuit only)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include terminal voltage and alarm current per device")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable diagram caching")

	return cmd
}

// runRender calculates the project's circuits and writes one diagram per
// circuit.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, circuitID, format, output string, detailed, noCache bool) error {
	ctx = withLogger(ctx, c.Logger)
	store, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer func() { _ = store.Close() }()
	runner := pipeline.NewRunner(store, nil, c.Logger)

	spinner := newSpinnerWithContext(ctx, "Calculating circuits...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Calculation failed")
		return err
	}
	spinner.Stop()

	circuits := result.Circuits
	if circuitID != "" {
		circuits = nil
		for _, ckt := range result.Circuits {
			if ckt.ID == circuitID {
				circuits = append(circuits, ckt)
			}
		}
		if len(circuits) == 0 {
			return fmt.Errorf("circuit %q not found in project", circuitID)
		}
	}
	if output != "" && len(circuits) > 1 {
		return fmt.Errorf("--output requires --circuit when the project has multiple circuits")
	}

	base := strings.TrimSuffix(opts.ProjectPath, filepath.Ext(opts.ProjectPath))
	for _, ckt := range circuits {
		path := output
		if path == "" {
			path = fmt.Sprintf("%s-%s.%s", base, strings.ToLower(ckt.ID), format)
		}
		data, err := renderCircuit(ctx, store, cache.NewDefaultKeyer(), ckt, format, detailed)
		if err != nil {
			return fmt.Errorf("render %s: %w", ckt.ID, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printSuccess("Rendered %d diagrams", len(circuits))
	return nil
}

// renderCircuit produces a single circuit diagram in the requested format.
// SVG and PNG output is cached keyed by the DOT source, which already
// encodes every visible property of the circuit (including --detailed);
// DOT itself is cheap enough to regenerate every time.
func renderCircuit(ctx context.Context, store cache.Cache, keyer cache.Keyer, ckt *circuit.Circuit, format string, detailed bool) ([]byte, error) {
	dot := render.ToDOT(ckt, render.Options{Detailed: detailed})
	if format == "dot" {
		return []byte(dot), nil
	}

	key := keyer.DiagramKey(cache.Hash([]byte(dot)), format)
	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "diagram")
		loggerFromContext(ctx).Debug("diagram cache hit", "circuit", ckt.ID, "format", format)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "diagram")

	var data []byte
	var err error
	switch format {
	case "svg":
		data, err = render.RenderSVG(ctx, dot)
	case "png":
		data, err = render.RenderPNG(ctx, dot)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Set(ctx, key, data, cache.TTLDiagram); err != nil {
		loggerFromContext(ctx).Debug("diagram cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "diagram", len(data))
	}
	return data, nil
}
