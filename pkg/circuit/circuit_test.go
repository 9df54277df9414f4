package circuit

import (
	"math"
	"testing"

	"github.com/firegrid/firegrid/pkg/catalog"
)

func mustWire(t *testing.T, gauge int) catalog.WireSpecification {
	t.Helper()
	w, err := catalog.Builtin().Wire(gauge)
	if err != nil {
		t.Fatalf("builtin catalog missing %d AWG: %v", gauge, err)
	}
	return w
}

func mustDevice(t *testing.T, model string) catalog.DeviceSpecification {
	t.Helper()
	d, err := catalog.Builtin().Device(model)
	if err != nil {
		t.Fatalf("builtin catalog missing %s: %v", model, err)
	}
	return d
}

// nacCircuit builds the reference notification circuit: three P2R
// horn/strobes (177 mA alarm each) at the given wire distances on a 24 V
// panel.
func nacCircuit(t *testing.T, gauge int, distances ...float64) *Circuit {
	t.Helper()
	spec := mustDevice(t, "P2R")
	c := &Circuit{
		ID:           "NAC-1",
		Type:         TypeNAC,
		PanelVoltage: 24,
		Wire:         mustWire(t, gauge),
	}
	for i, dist := range distances {
		c.Devices = append(c.Devices, Device{
			ID:           string(rune('A' + i)),
			Spec:         spec,
			WireDistance: dist,
		})
	}
	return c
}

func TestCalculateVoltageDropNAC(t *testing.T) {
	// Reference scenario: 3 NAC devices at 100/150/200 ft, 177 mA alarm
	// current each, 16 AWG, 24 V panel.
	c := nacCircuit(t, 16, 100, 150, 200)

	CalculateVoltageDrop(c)

	if c.TotalLength != 450 {
		t.Errorf("TotalLength = %g, want 450", c.TotalLength)
	}
	if got := c.AlarmCurrent; math.Abs(got-0.531) > 1e-9 {
		t.Errorf("AlarmCurrent = %g, want 0.531", got)
	}

	// drop[i] = lineCurrent[i] × r/ft × cumulative[i] × 2
	r := c.Wire.ResistancePft
	wantDrops := []float64{
		0.177 * r * 100 * 2,
		0.354 * r * 250 * 2,
		0.531 * r * 450 * 2,
	}
	for i, want := range wantDrops {
		if got := c.Devices[i].VoltageDrop; math.Abs(got-want) > 1e-9 {
			t.Errorf("device %d drop = %.5f, want %.5f", i, got, want)
		}
	}

	if math.Abs(c.MaxVoltageDrop-wantDrops[2]) > 1e-9 {
		t.Errorf("MaxVoltageDrop = %.5f, want %.5f", c.MaxVoltageDrop, wantDrops[2])
	}
	wantPct := wantDrops[2] / 24 * 100
	if math.Abs(c.DropPercent-wantPct) > 1e-9 {
		t.Errorf("DropPercent = %.3f, want %.3f", c.DropPercent, wantPct)
	}
	// Sanity: this reference circuit lands just under the 10% limit.
	if c.DropPercent < 7.5 || c.DropPercent > 10 {
		t.Errorf("DropPercent = %.2f, expected just under 10%%", c.DropPercent)
	}
}

func TestCalculateVoltageDropMonotonic(t *testing.T) {
	c := nacCircuit(t, 18, 50, 0, 120, 10)

	CalculateVoltageDrop(c)

	for i := 1; i < len(c.Devices); i++ {
		if c.Devices[i].VoltageDrop < c.Devices[i-1].VoltageDrop {
			t.Errorf("drop decreased at device %d: %.5f < %.5f",
				i, c.Devices[i].VoltageDrop, c.Devices[i-1].VoltageDrop)
		}
	}
}

func TestCalculateVoltageDropSLCUsesStandbyCurrent(t *testing.T) {
	smoke := mustDevice(t, "SD-355")
	c := &Circuit{
		ID:           "SLC-1",
		Type:         TypeSLC,
		PanelVoltage: 24,
		Wire:         mustWire(t, 18),
		Devices: []Device{
			{ID: "d1", Spec: smoke, WireDistance: 100},
			{ID: "d2", Spec: smoke, WireDistance: 100},
		},
	}

	CalculateVoltageDrop(c)

	// Line current at the second device is two standby currents, not alarm.
	want := 2 * smoke.StandbyCurrent * c.Wire.ResistancePft * 200 * 2
	if got := c.Devices[1].VoltageDrop; math.Abs(got-want) > 1e-12 {
		t.Errorf("SLC drop = %g, want %g (standby-current based)", got, want)
	}
}

func TestCalculateVoltageDropEmptyCircuit(t *testing.T) {
	c := &Circuit{ID: "NAC-9", Type: TypeNAC, PanelVoltage: 24, Wire: mustWire(t, 16)}

	CalculateVoltageDrop(c)

	if c.TotalLength != 0 || c.MaxVoltageDrop != 0 || c.DropPercent != 0 {
		t.Errorf("empty circuit should produce zero aggregates: %+v", c)
	}
}

func TestCalculateVoltageDropIsRerunnable(t *testing.T) {
	c := nacCircuit(t, 16, 100, 150, 200)

	CalculateVoltageDrop(c)
	first := c.MaxVoltageDrop
	CalculateVoltageDrop(c)

	if c.MaxVoltageDrop != first {
		t.Errorf("second run changed MaxVoltageDrop: %g != %g", c.MaxVoltageDrop, first)
	}
	if c.TotalLength != 450 {
		t.Errorf("second run changed TotalLength: %g", c.TotalLength)
	}
}

func TestValidateCompliancePassing(t *testing.T) {
	c := nacCircuit(t, 16, 100, 150, 200)
	CalculateVoltageDrop(c)

	ValidateCompliance(c, DefaultLimits())

	if !c.Valid {
		t.Fatalf("circuit should be valid, violations: %v", c.Violations)
	}
	if len(c.Violations) != 0 {
		t.Errorf("valid circuit must carry no violations, got %d", len(c.Violations))
	}
}

func TestValidateComplianceRunsEveryCheck(t *testing.T) {
	// A deliberately broken circuit: 22 AWG on a NAC (violates the 16 AWG
	// class minimum AND every P2R's 12-18 AWG terminal window), long runs
	// (excess drop AND under-voltage devices). The diagnosis must be
	// complete, not partial.
	c := nacCircuit(t, 22, 300, 300, 300)
	CalculateVoltageDrop(c)

	ValidateCompliance(c, DefaultLimits())

	if c.Valid {
		t.Fatal("circuit should be invalid")
	}
	// drop violation + 3 under-voltage devices + class minimum gauge +
	// 3 device gauge windows.
	if len(c.Violations) < 4 {
		t.Errorf("expected a complete diagnosis, got %d violations: %v",
			len(c.Violations), c.Violations)
	}

	// An invalid circuit always explains itself.
	if len(c.Violations) == 0 {
		t.Error("invalid circuit must carry at least one violation")
	}
}

func TestValidateComplianceCurrentCeiling(t *testing.T) {
	heavy := catalog.DeviceSpecification{
		Model: "LOAD", Type: catalog.DeviceModule,
		VoltageMin: 15, VoltageMax: 32, VoltageNominal: 24,
		StandbyCurrent: 0.05, AlarmCurrent: 0.05,
		Supervised: true,
	}
	c := &Circuit{
		ID: "SLC-1", Type: TypeSLC, PanelVoltage: 24, Wire: mustWire(t, 18),
	}
	for i := 0; i < 7; i++ {
		c.Devices = append(c.Devices, Device{ID: "m", Spec: heavy, WireDistance: 1})
	}
	CalculateVoltageDrop(c)

	ValidateCompliance(c, DefaultLimits())

	// 7 × 50 mA standby = 350 mA > 300 mA SLC ceiling.
	if c.Valid {
		t.Fatal("over-current SLC circuit should be invalid")
	}
	found := false
	for _, v := range c.Violations {
		if v.Section == "NEC 760.51" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing current-ceiling violation: %v", c.Violations)
	}
}

func TestValidateComplianceRegeneratesViolations(t *testing.T) {
	c := nacCircuit(t, 22, 300, 300, 300)
	CalculateVoltageDrop(c)
	ValidateCompliance(c, DefaultLimits())
	broken := len(c.Violations)

	// Fix the circuit and re-validate: stale violations must not linger.
	c.Wire = mustWire(t, 12)
	c.Devices = c.Devices[:1]
	c.Devices[0].WireDistance = 50
	CalculateVoltageDrop(c)
	ValidateCompliance(c, DefaultLimits())

	if broken == 0 {
		t.Fatal("setup: broken circuit had no violations")
	}
	if !c.Valid || len(c.Violations) != 0 {
		t.Errorf("repaired circuit still carries %d violations", len(c.Violations))
	}
}

func TestClone(t *testing.T) {
	c := nacCircuit(t, 16, 100, 150, 200)
	CalculateVoltageDrop(c)
	ValidateCompliance(c, DefaultLimits())

	clone := c.Clone()
	clone.Devices[0].WireDistance = 9999
	clone.Wire = mustWire(t, 22)

	if c.Devices[0].WireDistance != 100 {
		t.Error("mutating a clone's devices must not affect the original")
	}
	if c.Wire.GaugeAWG != 16 {
		t.Error("mutating a clone's wire must not affect the original")
	}
}

func TestStatus(t *testing.T) {
	c := nacCircuit(t, 16, 100, 150, 200)
	CalculateVoltageDrop(c)

	s := c.Status()

	if s.ID != "NAC-1" || s.Type != "NAC" {
		t.Errorf("status identity = %s/%s", s.ID, s.Type)
	}
	if math.Abs(s.DropPercent-c.DropPercent) > 1e-12 {
		t.Errorf("status drop = %g, want %g", s.DropPercent, c.DropPercent)
	}
	wantEOL := (24 - c.Devices[2].VoltageDrop) / 24 * 100
	if math.Abs(s.EOLVoltagePercent-wantEOL) > 1e-9 {
		t.Errorf("EOL voltage = %g, want %g", s.EOLVoltagePercent, wantEOL)
	}
	// P2R horn/strobes are not supervised devices.
	if s.Supervised {
		t.Error("NAC of horn/strobes should not report supervised")
	}
}
