// Package render draws circuit riser diagrams. A calculated circuit is
// converted to Graphviz DOT and rendered to SVG or PNG, with per-device
// voltage annotations and failing devices highlighted.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/firegrid/firegrid/pkg/circuit"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes per-device currents and terminal voltages in
	// labels. When false, only model and drop are shown.
	Detailed bool
}

// ToDOT converts a calculated circuit to Graphviz DOT format. The panel is
// the source node; devices chain off it in wiring order with segment
// distances on the edges. Devices whose terminal voltage falls below their
// minimum operating voltage are filled red.
//
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(c *circuit.Circuit, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph circuit {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	panelLabel := fmt.Sprintf("%s\n%.0fV · %d AWG", c.ID, c.PanelVoltage, c.Wire.GaugeAWG)
	fmt.Fprintf(&buf, "  %q [label=%q, shape=box3d, fillcolor=lightyellow];\n", panelNode(c), panelLabel)

	for _, d := range c.Devices {
		attrs := fmtAttrs(c, d, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", d.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	prev := panelNode(c)
	for _, d := range c.Devices {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", prev, d.ID, fmt.Sprintf("%.0f ft", d.WireDistance))
		prev = d.ID
	}

	buf.WriteString("}\n")
	return buf.String()
}

func panelNode(c *circuit.Circuit) string {
	return "panel:" + c.ID
}

func fmtLabel(c *circuit.Circuit, d circuit.Device, detailed bool) string {
	parts := []string{d.ID, d.Spec.Model, fmt.Sprintf("drop: %.2fV (%.1f%%)",
		d.VoltageDrop, dropPercent(c, d))}
	if detailed {
		parts = append(parts,
			fmt.Sprintf("terminal: %.2fV", d.TerminalVoltage(c.PanelVoltage)),
			fmt.Sprintf("alarm: %.3fA", d.Spec.AlarmCurrent))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(c *circuit.Circuit, d circuit.Device, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c, d, opts.Detailed))}
	if underpowered(c, d) {
		attrs = append(attrs, "fillcolor=lightcoral", "fontcolor=black")
	}
	return attrs
}

func dropPercent(c *circuit.Circuit, d circuit.Device) float64 {
	if c.PanelVoltage <= 0 {
		return 0
	}
	return d.VoltageDrop / c.PanelVoltage * 100
}

// underpowered reports whether the device's terminal voltage is below its
// minimum operating voltage.
func underpowered(c *circuit.Circuit, d circuit.Device) bool {
	return d.Spec.VoltageMin > 0 && d.TerminalVoltage(c.PanelVoltage) < d.Spec.VoltageMin
}
