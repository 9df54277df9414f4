package battery_test

import (
	"fmt"

	"github.com/firegrid/firegrid/pkg/battery"
)

func ExampleCalculate() {
	b, err := battery.Calculate(battery.Input{
		StandbyCurrent: 0.15,
		AlarmCurrent:   2.1,
		TemperatureF:   86,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("standby %.2f Ah + alarm %.3f Ah = %.1f Ah required\n",
		b.StandbyAh, b.AlarmAh, b.CapacityAh)
	// Output: standby 3.60 Ah + alarm 1.050 Ah = 5.5 Ah required
}

func ExampleRecommend() {
	b, err := battery.Calculate(battery.Input{
		StandbyCurrent: 0.15,
		AlarmCurrent:   2.1,
		TemperatureF:   86,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, cfg := range battery.Recommend(b.CapacityAh, b.Input.Voltage, b.Input.Chemistry) {
		fmt.Println(cfg.Description)
	}
	// Output:
	// 1 × 7Ah 24V lead_acid battery
	// 2 × 4Ah 12V lead_acid batteries in series
}
