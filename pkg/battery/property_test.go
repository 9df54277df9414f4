package battery

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestBatteryProperties verifies the sizing invariants over generated load
// profiles. These must hold for any valid input.
func TestBatteryProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based tests in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	genStandby := gen.Float64Range(0.001, 5)
	genAlarm := gen.Float64Range(0.001, 20)

	// More standby load never shrinks the required capacity.
	properties.Property("capacity monotonic in standby current", prop.ForAll(
		func(standby, alarm, delta float64) bool {
			a, err := Calculate(Input{StandbyCurrent: standby, AlarmCurrent: alarm})
			if err != nil {
				return false
			}
			b, err := Calculate(Input{StandbyCurrent: standby + delta, AlarmCurrent: alarm})
			if err != nil {
				return false
			}
			return b.CapacityAh >= a.CapacityAh
		},
		genStandby,
		genAlarm,
		gen.Float64Range(0, 2),
	))

	// Capacity is the amp-hour total through derating and the safety
	// factor; no stage may lose demand.
	properties.Property("capacity preserves the amp-hour chain", prop.ForAll(
		func(standby, alarm float64) bool {
			b, err := Calculate(Input{StandbyCurrent: standby, AlarmCurrent: alarm})
			if err != nil {
				return false
			}
			wantTotal := b.StandbyAh + b.AlarmAh
			if math.Abs(b.TotalAh-wantTotal) > 1e-9 {
				return false
			}
			return math.Abs(b.CapacityAh-b.TotalAh*b.DeratingFactor*b.Input.SafetyFactor) < 1e-9
		},
		genStandby,
		genAlarm,
	))

	// Every recommended configuration meets or exceeds the required
	// capacity, and series strings match the panel voltage.
	properties.Property("recommendations always cover the requirement", prop.ForAll(
		func(standby, alarm float64) bool {
			b, err := Calculate(Input{StandbyCurrent: standby, AlarmCurrent: alarm})
			if err != nil {
				return false
			}
			for _, cfg := range Recommend(b.CapacityAh, b.Input.Voltage, b.Input.Chemistry) {
				if cfg.TotalAh < b.CapacityAh {
					return false
				}
				if cfg.UnitVoltage*float64(cfg.Count) < b.Input.Voltage {
					return false
				}
			}
			return true
		},
		genStandby,
		genAlarm,
	))

	properties.TestingRun(t)
}
