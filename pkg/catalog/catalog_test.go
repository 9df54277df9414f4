package catalog

import (
	"testing"

	"github.com/firegrid/firegrid/pkg/errors"
)

func TestBuiltinLookups(t *testing.T) {
	c := Builtin()

	d, err := c.Device("SD-355")
	if err != nil {
		t.Fatalf("Device(SD-355) error: %v", err)
	}
	if d.Type != DeviceSmokeDetector {
		t.Errorf("SD-355 type = %q, want smoke_detector", d.Type)
	}
	if d.CoverageArea != 900 {
		t.Errorf("SD-355 coverage = %g, want 900", d.CoverageArea)
	}

	w, err := c.Wire(16)
	if err != nil {
		t.Fatalf("Wire(16) error: %v", err)
	}
	if w.ResistancePft <= 0 {
		t.Errorf("16 AWG resistance = %g, want > 0", w.ResistancePft)
	}

	r, err := c.Rule("NFPA72-17.5.3.1")
	if err != nil {
		t.Fatalf("Rule error: %v", err)
	}
	if got := r.Requirement("max_spacing_ft", 0); got != 30 {
		t.Errorf("max_spacing_ft = %g, want 30", got)
	}
}

func TestLookupMissIsExplicit(t *testing.T) {
	c := Builtin()

	_, err := c.Device("NO-SUCH-MODEL")
	if err == nil {
		t.Fatal("lookup miss must return an error, never a default spec")
	}
	if !errors.Is(err, errors.ErrCodeCatalogNotFound) {
		t.Errorf("error code = %q, want CATALOG_NOT_FOUND", errors.GetCode(err))
	}

	if _, err := c.Wire(20); err == nil {
		t.Error("unsupported gauge must return an error")
	}
	if _, err := c.Rule("NFPA72-0.0"); err == nil {
		t.Error("unknown rule must return an error")
	}
}

func TestRulesByCategory(t *testing.T) {
	c := Builtin()

	spacing := c.RulesByCategory(CategorySpacing)
	if len(spacing) != 2 {
		t.Fatalf("spacing rules = %d, want 2", len(spacing))
	}
	for i, r := range spacing {
		if r.Category != CategorySpacing {
			t.Errorf("rule %s category = %q", r.ID, r.Category)
		}
		if i > 0 && spacing[i].ID < spacing[i-1].ID {
			t.Errorf("rules not sorted: %s before %s", spacing[i-1].ID, spacing[i].ID)
		}
	}

	if got := c.RulesByCategory("no-such-category"); len(got) != 0 {
		t.Errorf("unknown category returned %d rules", len(got))
	}
}

func TestWireOrderingThickestFirst(t *testing.T) {
	wires := Builtin().Wires()
	for i := 1; i < len(wires); i++ {
		if wires[i].GaugeAWG < wires[i-1].GaugeAWG {
			t.Fatalf("wires not sorted: %d before %d", wires[i-1].GaugeAWG, wires[i].GaugeAWG)
		}
	}
	// Thicker wire must have lower resistance.
	for i := 1; i < len(wires); i++ {
		if wires[i].ResistancePft <= wires[i-1].ResistancePft {
			t.Errorf("resistance should increase with gauge number: %d vs %d AWG",
				wires[i-1].GaugeAWG, wires[i].GaugeAWG)
		}
	}
}

func TestDeviceTypePredicates(t *testing.T) {
	tests := []struct {
		typ          DeviceType
		detection    bool
		manual       bool
		notification bool
		audible      bool
		visible      bool
	}{
		{DeviceSmokeDetector, true, false, false, false, false},
		{DeviceHeatDetector, true, false, false, false, false},
		{DevicePullStation, false, true, false, false, false},
		{DeviceHorn, false, false, true, true, false},
		{DeviceStrobe, false, false, true, false, true},
		{DeviceHornStrobe, false, false, true, true, true},
		{DeviceModule, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := tt.typ.IsDetection(); got != tt.detection {
				t.Errorf("IsDetection = %v, want %v", got, tt.detection)
			}
			if got := tt.typ.IsManual(); got != tt.manual {
				t.Errorf("IsManual = %v, want %v", got, tt.manual)
			}
			if got := tt.typ.IsNotification(); got != tt.notification {
				t.Errorf("IsNotification = %v, want %v", got, tt.notification)
			}
			if got := tt.typ.IsAudible(); got != tt.audible {
				t.Errorf("IsAudible = %v, want %v", got, tt.audible)
			}
			if got := tt.typ.IsVisible(); got != tt.visible {
				t.Errorf("IsVisible = %v, want %v", got, tt.visible)
			}
		})
	}
}

func TestAcceptsGauge(t *testing.T) {
	d := DeviceSpecification{GaugeMin: 12, GaugeMax: 18}
	if !d.AcceptsGauge(16) {
		t.Error("16 AWG should be accepted in the 12-18 window")
	}
	if d.AcceptsGauge(22) {
		t.Error("22 AWG is thinner than the window allows")
	}
	if d.AcceptsGauge(10) {
		t.Error("10 AWG is thicker than the window allows")
	}

	// Zero window accepts anything.
	open := DeviceSpecification{}
	if !open.AcceptsGauge(22) {
		t.Error("zero gauge window should accept any gauge")
	}
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
[[device]]
model = "XP-1"
type = "horn_strobe"
voltage_min = 16.0
voltage_max = 33.0
voltage_nominal = 24.0
standby_current = 0.0
alarm_current = 0.110
mount_height_min = 80.0
mount_height_max = 96.0
gauge_min = 12
gauge_max = 18
candela = 30.0

[[wire]]
gauge = 18
resistance_per_ft = 0.006385
max_current = 6.0
voltage_rating = 300.0

[[rule]]
id = "SITE-1"
section = "site standard 4.2"
category = "circuit"
  [rule.requirements]
  max_voltage_drop_percent = 8.0
`)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	d, err := c.Device("XP-1")
	if err != nil {
		t.Fatalf("Device(XP-1): %v", err)
	}
	if d.Candela != 30 {
		t.Errorf("candela = %g, want 30", d.Candela)
	}

	r, err := c.Rule("SITE-1")
	if err != nil {
		t.Fatalf("Rule(SITE-1): %v", err)
	}
	if got := r.Requirement("max_voltage_drop_percent", 10); got != 8 {
		t.Errorf("site threshold = %g, want 8", got)
	}
}

func TestParseRejectsBadCatalog(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"InvertedVoltageWindow", `
[[device]]
model = "BAD"
type = "horn"
voltage_min = 33.0
voltage_max = 16.0
`},
		{"NegativeCurrent", `
[[device]]
model = "BAD"
type = "horn"
voltage_min = 16.0
voltage_max = 33.0
alarm_current = -0.1
`},
		{"ZeroResistance", `
[[wire]]
gauge = 18
resistance_per_ft = 0.0
`},
		{"EmptyRuleID", `
[[rule]]
id = ""
`},
		{"NotTOML", `{"json": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.toml)); err == nil {
				t.Error("Parse should reject malformed catalog")
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := Builtin()
	overlay := New(
		[]DeviceSpecification{{
			Model: "SD-355", Type: DeviceSmokeDetector,
			VoltageMin: 15, VoltageMax: 32, VoltageNominal: 24,
			StandbyCurrent: 0.0005, AlarmCurrent: 0.0065,
			CoverageArea: 900,
		}},
		nil, nil,
	)

	merged := base.Merge(overlay)

	d, err := merged.Device("SD-355")
	if err != nil {
		t.Fatalf("Device: %v", err)
	}
	if d.StandbyCurrent != 0.0005 {
		t.Errorf("overlay should win: standby = %g, want 0.0005", d.StandbyCurrent)
	}

	// Base entries survive.
	if _, err := merged.Device("BG-12"); err != nil {
		t.Errorf("base device lost in merge: %v", err)
	}
	// Original catalog untouched.
	orig, _ := base.Device("SD-355")
	if orig.StandbyCurrent != 0.0003 {
		t.Error("Merge must not mutate the receiver")
	}
}
