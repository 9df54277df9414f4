package rules

import "fmt"

// Code-default circuit thresholds.
const (
	defaultMaxDropPercent   = 10
	defaultMinEOLVoltagePct = 85
)

// CheckCircuits validates calculated circuit summaries: voltage-drop
// percentage, end-of-line voltage percentage, supervision, and end-of-line
// resistor presence. Electrical quantities are taken as given; the
// calculators own the math.
func (e *Engine) CheckCircuits(circuits []CircuitStatus) []Violation {
	r := e.rule(RuleCircuit)
	maxDrop := r.Requirement("max_voltage_drop_percent", defaultMaxDropPercent)
	minEOL := r.Requirement("min_eol_voltage_percent", defaultMinEOLVoltagePct)

	var out []Violation
	for _, c := range circuits {
		if c.DropPercent > maxDrop {
			sev := SeverityViolation
			// A drop past double the limit means devices are likely dead,
			// not merely out of spec.
			if c.DropPercent > 2*maxDrop {
				sev = SeverityCritical
			}
			out = append(out, Violation{
				RuleID:    r.ID,
				Severity:  sev,
				CircuitID: c.ID,
				Description: fmt.Sprintf("voltage drop %.1f%% exceeds %.0f%% maximum",
					c.DropPercent, maxDrop),
				Section:     r.Section,
				Remediation: r.Remediation,
				Priority:    2,
			})
		}

		if c.EOLVoltagePercent > 0 && c.EOLVoltagePercent < minEOL {
			out = append(out, Violation{
				RuleID:    r.ID,
				Severity:  SeverityViolation,
				CircuitID: c.ID,
				Description: fmt.Sprintf("end-of-line voltage %.1f%% of nominal, below %.0f%% minimum",
					c.EOLVoltagePercent, minEOL),
				Section:     r.Section,
				Remediation: r.Remediation,
				Priority:    2,
			})
		}

		if !c.Supervised {
			out = append(out, Violation{
				RuleID:      r.ID,
				Severity:    SeverityViolation,
				CircuitID:   c.ID,
				Description: fmt.Sprintf("%s circuit is not supervised", c.Type),
				Section:     r.Section,
				Remediation: "enable supervision so opens and shorts are detected",
				Priority:    2,
			})
		}

		if !c.HasEOLResistor {
			out = append(out, Violation{
				RuleID:      r.ID,
				Severity:    SeverityWarning,
				CircuitID:   c.ID,
				Description: "no end-of-line resistor on the circuit",
				Section:     r.Section,
				Remediation: "terminate the circuit with the panel's listed EOL resistor",
				Priority:    5,
			})
		}
	}
	return out
}
