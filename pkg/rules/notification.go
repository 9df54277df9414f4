package rules

import "fmt"

// Code-default strobe mounting window.
const (
	defaultStrobeHeightMinIn = 80
	defaultStrobeHeightMaxIn = 96
)

// candelaSteps maps maximum room area (sq ft) to the minimum strobe
// intensity for wall-mounted appliances, following the square-room table in
// NFPA 72 18.5.5.4.1: 20x20→15 cd, 30x30→30 cd, 40x40→60 cd, 50x50→95 cd.
// Rooms beyond the table require the largest listed intensity.
var candelaSteps = []struct {
	maxArea float64
	candela float64
}{
	{400, 15},
	{900, 30},
	{1600, 60},
	{2500, 95},
}

// RequiredCandela returns the minimum strobe intensity for a room area.
func RequiredCandela(roomArea float64) float64 {
	for _, step := range candelaSteps {
		if roomArea <= step.maxArea {
			return step.candela
		}
	}
	return 110
}

// CheckNotificationCoverage validates that each room has both audible and
// visible notification, and that every strobe is mounted in the 80-96 in
// window with adequate intensity for its room's area.
func (e *Engine) CheckNotificationCoverage(devices []PlacedDevice, rooms []Room) []Violation {
	strobeRule := e.rule(RuleStrobe)
	presenceRule := e.rule(RuleNotifPresence)
	hMin := strobeRule.Requirement("mount_height_min_in", defaultStrobeHeightMinIn)
	hMax := strobeRule.Requirement("mount_height_max_in", defaultStrobeHeightMaxIn)

	byRoom := make(map[string][]PlacedDevice)
	for _, d := range devices {
		byRoom[d.Room] = append(byRoom[d.Room], d)
	}

	var out []Violation
	for _, room := range rooms {
		audible, visible := false, false
		for _, d := range byRoom[room.ID] {
			if d.Spec.Type.IsAudible() {
				audible = true
			}
			if d.Spec.Type.IsVisible() {
				visible = true
			}
		}

		if !audible {
			out = append(out, Violation{
				RuleID:      presenceRule.ID,
				Severity:    SeverityViolation,
				Location:    room.ID,
				Description: fmt.Sprintf("room %s has no audible notification appliance", room.ID),
				Section:     presenceRule.Section,
				Remediation: presenceRule.Remediation,
				Priority:    3,
			})
		}
		if !visible {
			out = append(out, Violation{
				RuleID:      presenceRule.ID,
				Severity:    SeverityViolation,
				Location:    room.ID,
				Description: fmt.Sprintf("room %s has no visible notification appliance", room.ID),
				Section:     presenceRule.Section,
				Remediation: presenceRule.Remediation,
				Priority:    3,
			})
		}

		required := RequiredCandela(room.Area)
		for _, d := range byRoom[room.ID] {
			if !d.Spec.Type.IsVisible() {
				continue
			}

			if d.MountingHeight < hMin || d.MountingHeight > hMax {
				out = append(out, Violation{
					RuleID:   strobeRule.ID,
					Severity: SeverityViolation,
					DeviceID: d.ID,
					Location: room.ID,
					Description: fmt.Sprintf("strobe mounted at %.0f in, outside the %.0f-%.0f in window",
						d.MountingHeight, hMin, hMax),
					Section:     strobeRule.Section,
					Remediation: strobeRule.Remediation,
					Priority:    3,
				})
			}

			if d.Spec.Candela > 0 && d.Spec.Candela < required {
				out = append(out, Violation{
					RuleID:   strobeRule.ID,
					Severity: SeverityViolation,
					DeviceID: d.ID,
					Location: room.ID,
					Description: fmt.Sprintf("%.0f cd strobe under-rated for %.0f sq ft room (needs %.0f cd)",
						d.Spec.Candela, room.Area, required),
					Section:     strobeRule.Section,
					Remediation: strobeRule.Remediation,
					Priority:    3,
				})
			}
		}
	}
	return out
}
