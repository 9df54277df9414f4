package pipeline

import (
	"github.com/firegrid/firegrid/pkg/battery"
	"github.com/firegrid/firegrid/pkg/catalog"
	"github.com/firegrid/firegrid/pkg/circuit"
	"github.com/firegrid/firegrid/pkg/coverage"
	"github.com/firegrid/firegrid/pkg/project"
)

// Calculate runs the electrical stage: voltage drop and compliance on every
// circuit, wire-gauge optimization when requested, battery sizing when
// requested, and per-room coverage analysis. Results land in r.
func Calculate(sys *project.System, cat *catalog.Catalog, opts Options, r *Result) error {
	circuits, err := sys.Circuits(cat)
	if err != nil {
		return err
	}
	limits := circuit.DefaultLimits()

	for _, c := range circuits {
		if opts.Optimize {
			gauges, err := circuit.OptimizeWireGauge(c, cat, limits)
			if err != nil {
				return err
			}
			if r.ValidGauges == nil {
				r.ValidGauges = make(map[string][]int)
			}
			r.ValidGauges[c.ID] = gauges
			continue
		}
		circuit.CalculateVoltageDrop(c)
		circuit.ValidateCompliance(c, limits)
	}
	r.Circuits = circuits

	if opts.Battery != nil {
		in := *opts.Battery
		// Unspecified currents default to the panel totals across all
		// circuits, so a bare --battery flag sizes the loaded system.
		if in.StandbyCurrent == 0 && in.AlarmCurrent == 0 {
			for _, c := range circuits {
				in.StandbyCurrent += c.StandbyCurrent
				in.AlarmCurrent += c.AlarmCurrent
			}
		}
		breakdown, err := battery.Calculate(in)
		if err != nil {
			return err
		}
		r.Battery = &breakdown
		r.BatteryConfigs = battery.Recommend(
			breakdown.CapacityAh, breakdown.Input.Voltage, breakdown.Input.Chemistry)
	}

	analyses, err := analyzeRooms(sys, cat)
	if err != nil {
		return err
	}
	r.Coverage = analyses
	return nil
}

// analyzeRooms groups placements by room and runs the coverage analysis
// for each room the project declares.
func analyzeRooms(sys *project.System, cat *catalog.Catalog) (map[string]coverage.Analysis, error) {
	if len(sys.Rooms) == 0 {
		return nil, nil
	}

	placed, err := sys.PlacedDevices(cat)
	if err != nil {
		return nil, err
	}
	byRoom := make(map[string][]coverage.PlacedDevice)
	for _, d := range placed {
		byRoom[d.Room] = append(byRoom[d.Room], coverage.PlacedDevice{ID: d.ID, Spec: d.Spec})
	}

	out := make(map[string]coverage.Analysis, len(sys.Rooms))
	for _, room := range sys.Rooms {
		a, err := coverage.Analyze(byRoom[room.ID], room.Area)
		if err != nil {
			return nil, err
		}
		out[room.ID] = a
	}
	return out, nil
}
