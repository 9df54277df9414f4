package rules

import "fmt"

// Code-default pull station thresholds.
const (
	defaultPullHeightMinIn = 42
	defaultPullHeightMaxIn = 48
	defaultMaxExitDistFt   = 5
)

// CheckManualPullStations validates every pull station's mounting height
// against the 42-48 in operable window and its distance to the nearest
// exit against the 5 ft maximum.
func (e *Engine) CheckManualPullStations(devices []PlacedDevice) []Violation {
	r := e.rule(RulePullStation)
	hMin := r.Requirement("mount_height_min_in", defaultPullHeightMinIn)
	hMax := r.Requirement("mount_height_max_in", defaultPullHeightMaxIn)
	maxExit := r.Requirement("max_exit_distance_ft", defaultMaxExitDistFt)

	var out []Violation
	for _, d := range devices {
		if !d.Spec.Type.IsManual() {
			continue
		}

		if d.MountingHeight < hMin || d.MountingHeight > hMax {
			out = append(out, Violation{
				RuleID:   r.ID,
				Severity: SeverityViolation,
				DeviceID: d.ID,
				Location: d.Room,
				Description: fmt.Sprintf("pull station mounted at %.0f in, outside the %.0f-%.0f in window",
					d.MountingHeight, hMin, hMax),
				Section:     r.Section,
				Remediation: r.Remediation,
				Priority:    3,
			})
		}

		if d.ExitDistance > maxExit {
			out = append(out, Violation{
				RuleID:   r.ID,
				Severity: SeverityViolation,
				DeviceID: d.ID,
				Location: d.Room,
				Description: fmt.Sprintf("pull station is %.0f ft from the nearest exit, exceeds %.0f ft maximum",
					d.ExitDistance, maxExit),
				Section:     r.Section,
				Remediation: r.Remediation,
				Priority:    3,
			})
		}
	}
	return out
}
