package rules

import (
	"fmt"
	"math"

	"github.com/firegrid/firegrid/pkg/catalog"
)

// Code-default spacing thresholds, used when the catalog omits the rule.
const (
	defaultMaxSpacingFt      = 30
	defaultMaxWallDistanceFt = 15
)

// CheckDeviceSpacing validates detector placement: the distance between
// neighboring same-type detectors in a room against the listed maximum
// spacing, and each detector's distance to the nearest wall against the
// maximum wall distance.
//
// The neighbor test is nearest-neighbor, not all-pairs: two detectors at
// opposite ends of a long corridor are fine as long as something covers the
// middle. A detector with no same-type neighbor in its room is skipped here;
// coverage analysis reports sparse rooms separately.
func (e *Engine) CheckDeviceSpacing(devices []PlacedDevice) []Violation {
	var out []Violation

	for i, d := range devices {
		if !d.Spec.Type.IsDetection() {
			continue
		}

		r := e.spacingRule(d.Spec.Type)
		maxSpacing := d.Spec.MaxSpacing
		if maxSpacing <= 0 {
			maxSpacing = r.Requirement("max_spacing_ft", defaultMaxSpacingFt)
		}
		maxWall := r.Requirement("max_wall_distance_ft", defaultMaxWallDistanceFt)

		if nearest, ok := nearestSameType(devices, i); ok && nearest > maxSpacing {
			out = append(out, Violation{
				RuleID:   r.ID,
				Severity: SeverityViolation,
				DeviceID: d.ID,
				Location: d.Room,
				Description: fmt.Sprintf("nearest %s is %.0f ft away, exceeds %.0f ft maximum spacing",
					d.Spec.Type, nearest, maxSpacing),
				Section:     r.Section,
				Remediation: r.Remediation,
				Priority:    4,
			})
		}

		if d.WallDistance > maxWall {
			out = append(out, Violation{
				RuleID:   r.ID,
				Severity: SeverityViolation,
				DeviceID: d.ID,
				Location: d.Room,
				Description: fmt.Sprintf("detector is %.0f ft from the nearest wall, exceeds %.0f ft maximum",
					d.WallDistance, maxWall),
				Section:     r.Section,
				Remediation: r.Remediation,
				Priority:    4,
			})
		}
	}

	return out
}

// spacingRule picks the spacing rule matching the detector type.
func (e *Engine) spacingRule(t catalog.DeviceType) catalog.NFPARule {
	if t == catalog.DeviceHeatDetector {
		return e.rule(RuleHeatSpacing)
	}
	return e.rule(RuleSmokeSpacing)
}

// nearestSameType returns the distance to the closest device of the same
// type in the same room, and whether such a neighbor exists.
func nearestSameType(devices []PlacedDevice, i int) (float64, bool) {
	d := devices[i]
	best := math.Inf(1)
	found := false
	for j, other := range devices {
		if j == i || other.Spec.Type != d.Spec.Type || other.Room != d.Room {
			continue
		}
		dist := math.Hypot(other.X-d.X, other.Y-d.Y)
		if dist < best {
			best = dist
			found = true
		}
	}
	return best, found
}
