package circuit

import (
	"fmt"

	"github.com/firegrid/firegrid/pkg/rules"
)

// Limits holds the electrical thresholds the validator enforces.
// Zero-value maps mean "no limit for that circuit class".
type Limits struct {
	// MaxDropPercent is the worst-case voltage drop ceiling.
	MaxDropPercent float64

	// MinGauge maps circuit class to the thinnest permissible wire,
	// as an AWG number (a larger number is thinner).
	MinGauge map[Type]int

	// MaxCurrent maps circuit class to its aggregate current ceiling in
	// amperes: standby current for SLC, alarm current otherwise.
	MaxCurrent map[Type]float64
}

// DefaultLimits returns the code-default thresholds: 10% maximum drop,
// 18 AWG minimum for SLC and 16 AWG for NAC, 300 mA SLC and 3 A NAC
// current ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxDropPercent: 10,
		MinGauge: map[Type]int{
			TypeSLC: 18,
			TypeNAC: 16,
		},
		MaxCurrent: map[Type]float64{
			TypeSLC: 0.3,
			TypeNAC: 3.0,
		},
	}
}

// Rule references used by circuit compliance violations.
const (
	sectionVoltageDrop   = "NFPA 72 23.6.1"
	sectionDeviceVoltage = "NFPA 72 10.3.5"
	sectionWireGauge     = "NEC 760.49"
	sectionCircuitLoad   = "NEC 760.51"
	sectionTerminals     = "NEC 110.14"
)

// ValidateCompliance checks the calculated circuit against limits and
// populates Violations and Valid. Every check runs unconditionally; a
// failing circuit gets its complete diagnosis in one pass, never a partial
// one. Violations from previous calls are discarded first.
//
// Callers must run [CalculateVoltageDrop] beforehand; the validator reads
// the calculated fields and does not recompute them.
func ValidateCompliance(c *Circuit, limits Limits) {
	c.Violations = c.Violations[:0]

	// (a) Worst-case voltage drop percentage.
	if limits.MaxDropPercent > 0 && c.DropPercent > limits.MaxDropPercent {
		c.Violations = append(c.Violations, rules.Violation{
			RuleID:    rules.RuleCircuit,
			Severity:  rules.SeverityViolation,
			CircuitID: c.ID,
			Description: fmt.Sprintf("voltage drop %.2f%% exceeds %.0f%% maximum",
				c.DropPercent, limits.MaxDropPercent),
			Section:     sectionVoltageDrop,
			Remediation: "use a thicker wire gauge, shorten runs, or split the circuit",
			Priority:    2,
		})
	}

	// (b) Terminal voltage at every device.
	for _, d := range c.Devices {
		terminal := d.TerminalVoltage(c.PanelVoltage)
		if terminal < d.Spec.VoltageMin {
			c.Violations = append(c.Violations, rules.Violation{
				RuleID:    rules.RuleCircuit,
				Severity:  rules.SeverityViolation,
				CircuitID: c.ID,
				DeviceID:  d.ID,
				Description: fmt.Sprintf("device %s sees %.2f V, below its %.1f V minimum",
					d.ID, terminal, d.Spec.VoltageMin),
				Section:     sectionDeviceVoltage,
				Remediation: "reduce upstream voltage drop so the device stays in its operating window",
				Priority:    2,
			})
		}
	}

	// (c) Circuit-class minimum wire gauge.
	if minGauge, ok := limits.MinGauge[c.Type]; ok && c.Wire.GaugeAWG > minGauge {
		c.Violations = append(c.Violations, rules.Violation{
			RuleID:    rules.RuleCircuit,
			Severity:  rules.SeverityViolation,
			CircuitID: c.ID,
			Description: fmt.Sprintf("%d AWG wire is thinner than the %d AWG minimum for %s circuits",
				c.Wire.GaugeAWG, minGauge, c.Type),
			Section:     sectionWireGauge,
			Remediation: fmt.Sprintf("rewire with %d AWG or thicker", minGauge),
			Priority:    2,
		})
	}

	// (d) Aggregate current ceiling.
	if ceiling, ok := limits.MaxCurrent[c.Type]; ok {
		current := c.AlarmCurrent
		if c.Type == TypeSLC {
			current = c.StandbyCurrent
		}
		if current > ceiling {
			c.Violations = append(c.Violations, rules.Violation{
				RuleID:    rules.RuleCircuit,
				Severity:  rules.SeverityViolation,
				CircuitID: c.ID,
				Description: fmt.Sprintf("aggregate current %.3f A exceeds the %.1f A ceiling for %s circuits",
					current, ceiling, c.Type),
				Section:     sectionCircuitLoad,
				Remediation: "split devices across additional circuits",
				Priority:    2,
			})
		}
	}

	// (e) Per-device gauge window.
	for _, d := range c.Devices {
		if !d.Spec.AcceptsGauge(c.Wire.GaugeAWG) {
			c.Violations = append(c.Violations, rules.Violation{
				RuleID:    rules.RuleCircuit,
				Severity:  rules.SeverityViolation,
				CircuitID: c.ID,
				DeviceID:  d.ID,
				Description: fmt.Sprintf("device %s terminals accept %d-%d AWG, circuit uses %d AWG",
					d.ID, d.Spec.GaugeMin, d.Spec.GaugeMax, c.Wire.GaugeAWG),
				Section:     sectionTerminals,
				Remediation: "choose a gauge inside every device's terminal window",
				Priority:    3,
			})
		}
	}

	c.Valid = len(c.Violations) == 0
}
