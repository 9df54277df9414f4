package render

import (
	"strings"
	"testing"

	"github.com/firegrid/firegrid/pkg/catalog"
	"github.com/firegrid/firegrid/pkg/circuit"
)

func testCircuit(t *testing.T, distance float64) *circuit.Circuit {
	t.Helper()
	cat := catalog.Builtin()
	wire, err := cat.Wire(16)
	if err != nil {
		t.Fatalf("builtin wire: %v", err)
	}
	spec, err := cat.Device("P2R")
	if err != nil {
		t.Fatalf("builtin device: %v", err)
	}
	c := &circuit.Circuit{
		ID:           "NAC-1",
		Type:         circuit.TypeNAC,
		PanelVoltage: 24,
		Wire:         wire,
		Devices: []circuit.Device{
			{ID: "HS1", Spec: spec, WireDistance: distance},
			{ID: "HS2", Spec: spec, WireDistance: distance},
		},
	}
	circuit.CalculateVoltageDrop(c)
	return c
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testCircuit(t, 100), Options{})

	for _, want := range []string{
		"digraph circuit",
		`"panel:NAC-1"`,
		`"HS1"`,
		`"HS2"`,
		`"panel:NAC-1" -> "HS1"`,
		`"HS1" -> "HS2"`,
		"100 ft",
		"16 AWG",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// A short healthy run should not flag any device.
	if strings.Contains(dot, "lightcoral") {
		t.Errorf("healthy circuit should have no highlighted devices:\n%s", dot)
	}
}

func TestToDOTHighlightsUnderpoweredDevices(t *testing.T) {
	// 2000 ft legs drive the terminal voltage below the appliance minimum.
	dot := ToDOT(testCircuit(t, 2000), Options{})
	if !strings.Contains(dot, "lightcoral") {
		t.Errorf("expected underpowered devices to be highlighted:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testCircuit(t, 100), Options{Detailed: true})
	for _, want := range []string{"terminal:", "alarm:"} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q", want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?><svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)
	if !strings.Contains(string(out), `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(string(out), `width="100" height="50"`) {
		t.Errorf("explicit dimensions missing: %s", out)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	in := []byte(`<svg xmlns="x"><g/></svg>`)
	if got := normalizeViewBox(in); string(got) != string(in) {
		t.Errorf("SVG without viewBox should pass through unchanged")
	}
}
