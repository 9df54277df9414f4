package circuit

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/firegrid/firegrid/pkg/catalog"
)

// buildNAC assembles a NAC circuit from generated distances and alarm
// currents, truncating the longer slice so the two line up.
func buildNAC(distances, currents []float64) *Circuit {
	n := len(distances)
	if len(currents) < n {
		n = len(currents)
	}
	wire, _ := catalog.Builtin().Wire(16)
	c := &Circuit{ID: "NAC-P", Type: TypeNAC, PanelVoltage: 24, Wire: wire}
	for i := 0; i < n; i++ {
		c.Devices = append(c.Devices, Device{
			ID: "d",
			Spec: catalog.DeviceSpecification{
				Model: "GEN", Type: catalog.DeviceHornStrobe,
				VoltageMin: 16, VoltageMax: 33, VoltageNominal: 24,
				AlarmCurrent: currents[i],
			},
			WireDistance: distances[i],
		})
	}
	return c
}

// TestCircuitProperties verifies the calculation invariants over generated
// circuits. These must hold for any valid device arrangement.
func TestCircuitProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based tests in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	genDistances := gen.SliceOf(gen.Float64Range(0, 500))
	genCurrents := gen.SliceOf(gen.Float64Range(0, 0.5))

	// Voltage drop is non-decreasing along insertion order for any
	// circuit with non-negative wire distances.
	properties.Property("voltage drop monotonic along device order", prop.ForAll(
		func(distances, currents []float64) bool {
			c := buildNAC(distances, currents)
			CalculateVoltageDrop(c)
			for i := 1; i < len(c.Devices); i++ {
				if c.Devices[i].VoltageDrop < c.Devices[i-1].VoltageDrop {
					return false
				}
			}
			return true
		},
		genDistances,
		genCurrents,
	))

	// The maximum drop is the last device's drop under monotonicity.
	properties.Property("max drop occurs at end of line", prop.ForAll(
		func(distances, currents []float64) bool {
			c := buildNAC(distances, currents)
			CalculateVoltageDrop(c)
			if len(c.Devices) == 0 {
				return c.MaxVoltageDrop == 0
			}
			return c.MaxVoltageDrop == c.Devices[len(c.Devices)-1].VoltageDrop
		},
		genDistances,
		genCurrents,
	))

	// An invalid circuit always carries at least one violation, and a
	// valid circuit carries none.
	properties.Property("validity agrees with violation list", prop.ForAll(
		func(distances, currents []float64) bool {
			c := buildNAC(distances, currents)
			CalculateVoltageDrop(c)
			ValidateCompliance(c, DefaultLimits())
			if c.Valid {
				return len(c.Violations) == 0
			}
			return len(c.Violations) > 0
		},
		genDistances,
		genCurrents,
	))

	// Re-running the optimizer on its own output selects the same gauge.
	properties.Property("optimizer idempotent", prop.ForAll(
		func(distances, currents []float64) bool {
			c := buildNAC(distances, currents)
			if _, err := OptimizeWireGauge(c, catalog.Builtin(), DefaultLimits()); err != nil {
				return false
			}
			first := c.Wire.GaugeAWG
			if _, err := OptimizeWireGauge(c, catalog.Builtin(), DefaultLimits()); err != nil {
				return false
			}
			return c.Wire.GaugeAWG == first
		},
		genDistances,
		genCurrents,
	))

	properties.TestingRun(t)
}
