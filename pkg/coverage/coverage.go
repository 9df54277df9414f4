// Package coverage estimates detector coverage for a room using the
// per-device listed coverage areas. The estimate is a simple area sum with
// a per-device shortfall heuristic, not a geometric union of coverage
// circles; overlapping devices are counted at full value.
package coverage

import (
	"fmt"

	"github.com/firegrid/firegrid/pkg/catalog"
	"github.com/firegrid/firegrid/pkg/errors"
)

// Gap records a single device whose listed coverage falls short of the
// room it serves.
type Gap struct {
	DeviceID    string  `json:"device_id"`
	Model       string  `json:"model"`
	ShortfallSq float64 `json:"shortfall_sq_ft"`
}

// Analysis summarizes how well a set of devices covers a room.
type Analysis struct {
	RoomArea        float64  `json:"room_area_sq_ft"`
	TotalCoverage   float64  `json:"total_coverage_sq_ft"`
	CoveragePercent float64  `json:"coverage_percentage"`
	Gaps            []Gap    `json:"gaps,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Covered reports whether the estimate reaches full room coverage.
func (a Analysis) Covered() bool {
	return a.CoveragePercent >= 100
}

// PlacedDevice pairs a device instance with its catalog specification.
type PlacedDevice struct {
	ID   string
	Spec catalog.DeviceSpecification
}

// gapThresholdSqFt is the shortfall below which a single device's deficit
// is ignored as noise.
const gapThresholdSqFt = 100

// Analyze estimates coverage of roomArea (square feet) by the given
// devices. Only detection devices contribute coverage area; notification
// appliances are covered by the candela rules instead.
func Analyze(devices []PlacedDevice, roomArea float64) (Analysis, error) {
	if roomArea <= 0 {
		return Analysis{}, errors.New(errors.ErrCodeInvalidInput, "room area must be positive")
	}

	a := Analysis{RoomArea: roomArea}
	detectors := 0
	for _, d := range devices {
		if !d.Spec.Type.IsDetection() {
			continue
		}
		detectors++
		a.TotalCoverage += d.Spec.CoverageArea

		shortfall := roomArea - d.Spec.CoverageArea
		if d.Spec.CoverageArea < roomArea && shortfall > gapThresholdSqFt {
			a.Gaps = append(a.Gaps, Gap{
				DeviceID:    d.ID,
				Model:       d.Spec.Model,
				ShortfallSq: shortfall,
			})
		}
	}

	a.CoveragePercent = a.TotalCoverage / roomArea * 100
	if a.CoveragePercent > 100 {
		a.CoveragePercent = 100
	}

	switch {
	case detectors == 0:
		a.Recommendations = append(a.Recommendations,
			"no detection devices placed: add smoke or heat detectors to this room")
	case a.CoveragePercent < 100:
		deficit := roomArea - a.TotalCoverage
		a.Recommendations = append(a.Recommendations, fmt.Sprintf(
			"coverage is %.0f%%: add detectors for the remaining %.0f sq ft",
			a.CoveragePercent, deficit))
	}
	if len(a.Gaps) > 0 {
		a.Recommendations = append(a.Recommendations, fmt.Sprintf(
			"%d device(s) are individually undersized for this room; consider relocating or supplementing them",
			len(a.Gaps)))
	}

	return a, nil
}
