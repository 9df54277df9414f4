// Package rules implements the NFPA rule engine: pure check functions that
// map placement and circuit records to typed compliance violations.
//
// The engine holds an immutable rule catalog and no other state; every check
// is idempotent and runs to completion, accumulating all failures rather
// than stopping at the first. A non-compliant design therefore always gets a
// complete diagnosis in one pass.
package rules

import (
	"github.com/firegrid/firegrid/pkg/catalog"
)

// Rule identifiers the engine consults. Thresholds come from the catalog's
// rule entries when present and from code defaults otherwise.
const (
	RuleSmokeSpacing      = "NFPA72-17.5.3.1"
	RuleHeatSpacing       = "NFPA72-17.6.3.1"
	RulePullStation       = "NFPA72-17.14.8"
	RuleCircuit           = "NFPA72-23.6.1"
	RuleStrobe            = "NFPA72-18.5.5"
	RuleNotifPresence     = "NFPA72-18.4.3"
	RuleDetectionRequired = "NFPA72-17.1"
	RuleManualRequired    = "NFPA72-17.14"
	RuleNotifRequired     = "NFPA72-18.1"
)

// PlacedDevice is a device instance positioned in the design. Placement
// distances are feet; mounting height is inches above finished floor.
type PlacedDevice struct {
	ID             string
	Spec           catalog.DeviceSpecification
	X, Y           float64
	Room           string
	MountingHeight float64
	WallDistance   float64
	ExitDistance   float64
}

// CircuitStatus summarizes one circuit's electrical state for rule checks.
// It is derived from a calculated circuit; the rule engine never recomputes
// electrical quantities.
type CircuitStatus struct {
	ID                string
	Type              string
	DropPercent       float64
	EOLVoltagePercent float64
	Supervised        bool
	HasEOLResistor    bool
}

// Room describes an occupied area in square feet.
type Room struct {
	ID   string
	Area float64
}

// SystemReview is the complete input to a compliance evaluation.
type SystemReview struct {
	Devices  []PlacedDevice
	Circuits []CircuitStatus
	Rooms    []Room
}

// Engine evaluates designs against an immutable rule catalog.
// A single Engine is safe for concurrent use.
type Engine struct {
	cat *catalog.Catalog
}

// NewEngine creates a rule engine over the given catalog.
// A nil catalog falls back to the builtin rule set.
func NewEngine(cat *catalog.Catalog) *Engine {
	if cat == nil {
		cat = catalog.Builtin()
	}
	return &Engine{cat: cat}
}

// rule returns the catalog rule with the given ID, or a zero rule whose
// Requirement lookups all hit their fallbacks. The checks keep working with
// partial site catalogs that omit rule entries.
func (e *Engine) rule(id string) catalog.NFPARule {
	r, err := e.cat.Rule(id)
	if err != nil {
		return catalog.NFPARule{ID: id}
	}
	return r
}

// Evaluate runs every check against the system and returns the full
// violation set, sorted most severe first. System-level presence checks run
// alongside the per-domain checks so an empty design is diagnosed rather
// than trivially passing.
func (e *Engine) Evaluate(sys SystemReview) []Violation {
	var out []Violation
	out = append(out, e.checkPresence(sys)...)
	out = append(out, e.CheckDeviceSpacing(sys.Devices)...)
	out = append(out, e.CheckManualPullStations(sys.Devices)...)
	out = append(out, e.CheckCircuits(sys.Circuits)...)
	out = append(out, e.CheckNotificationCoverage(sys.Devices, sys.Rooms)...)
	SortViolations(out)
	return out
}

// checkPresence flags missing device classes at CRITICAL severity: a design
// with no detection, no manual activation, or no notification cannot alert
// anyone, whatever its circuits look like.
func (e *Engine) checkPresence(sys SystemReview) []Violation {
	var out []Violation

	hasDetection, hasManual, hasNotification := false, false, false
	for _, d := range sys.Devices {
		switch {
		case d.Spec.Type.IsDetection():
			hasDetection = true
		case d.Spec.Type.IsManual():
			hasManual = true
		case d.Spec.Type.IsNotification():
			hasNotification = true
		}
	}

	if !hasDetection {
		r := e.rule(RuleDetectionRequired)
		out = append(out, Violation{
			RuleID:      r.ID,
			Severity:    SeverityCritical,
			Description: "no automatic detection devices in the design",
			Section:     r.Section,
			Remediation: r.Remediation,
			Priority:    1,
		})
	}
	if !hasManual {
		r := e.rule(RuleManualRequired)
		out = append(out, Violation{
			RuleID:      r.ID,
			Severity:    SeverityCritical,
			Description: "no manual pull stations in the design",
			Section:     r.Section,
			Remediation: r.Remediation,
			Priority:    1,
		})
	}
	if !hasNotification {
		r := e.rule(RuleNotifRequired)
		out = append(out, Violation{
			RuleID:      r.ID,
			Severity:    SeverityCritical,
			Description: "no notification appliances in the design",
			Section:     r.Section,
			Remediation: r.Remediation,
			Priority:    1,
		})
	}

	return out
}
