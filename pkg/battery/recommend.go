package battery

import (
	"fmt"
	"math"
)

// standardSizes lists commercially available sealed battery capacities in
// amp-hours, ascending.
var standardSizes = []float64{4, 5, 7, 8, 10, 12, 18, 24, 26, 33, 40, 55, 65, 77, 100, 120, 150, 200}

// Configuration is one way to assemble standard batteries into a bank that
// meets a required capacity.
type Configuration struct {
	Count          int     `json:"count"`
	UnitCapacityAh float64 `json:"unit_capacity_ah"`
	UnitVoltage    float64 `json:"unit_voltage"`
	TotalAh        float64 `json:"total_ah"`
	Arrangement    string  `json:"arrangement"`
	Description    string  `json:"description"`
}

// Recommend proposes battery configurations meeting the required capacity,
// cheapest first. It always offers the smallest single standard battery
// that covers the demand; for system voltages above 12V it also offers a
// series string of 12V units, each sized for its share of the demand.
// The list is empty when no standard size can cover the demand.
func Recommend(capacityAh, voltage float64, chemistry Chemistry) []Configuration {
	var configs []Configuration
	if capacityAh <= 0 {
		return configs
	}

	if unit, ok := smallestFit(capacityAh); ok {
		configs = append(configs, Configuration{
			Count:          1,
			UnitCapacityAh: unit,
			UnitVoltage:    voltage,
			TotalAh:        unit,
			Arrangement:    "single",
			Description:    fmt.Sprintf("1 × %.0fAh %gV %s battery", unit, voltage, chemistry),
		})
	}

	if voltage > 12 {
		count := int(math.Ceil(voltage / 12))
		share := capacityAh / float64(count)
		if unit, ok := smallestFit(share); ok {
			configs = append(configs, Configuration{
				Count:          count,
				UnitCapacityAh: unit,
				UnitVoltage:    12,
				TotalAh:        unit * float64(count),
				Arrangement:    "series",
				Description: fmt.Sprintf("%d × %.0fAh 12V %s batteries in series",
					count, unit, chemistry),
			})
		}
	}

	return configs
}

// smallestFit returns the smallest standard size at or above the required
// capacity.
func smallestFit(capacityAh float64) (float64, bool) {
	for _, size := range standardSizes {
		if size >= capacityAh {
			return size, true
		}
	}
	return 0, false
}
