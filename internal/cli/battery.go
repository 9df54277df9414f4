package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firegrid/firegrid/pkg/battery"
)

// batteryCommand creates the standalone battery sizing command.
func (c *CLI) batteryCommand() *cobra.Command {
	var (
		standby    float64
		alarm      float64
		hours      float64
		alarmHours float64
		voltage    float64
		chemistry  string
		tempF      float64
		safety     float64
		multiplier float64
	)

	cmd := &cobra.Command{
		Use:   "battery",
		Short: "Size standby batteries from electrical loads",
		Long: `Size standby batteries from electrical loads.

Capacity is computed per NFPA 72: standby plus alarm amp-hours, temperature
derating, and a safety factor. High-rate alarm discharge is corrected with
the Peukert exponent of the chosen chemistry. The result is matched against
standard commercial battery sizes, including series strings for panels
above 12V.`,
		Example: `  firegrid battery --standby 0.15 --alarm 2.1
  firegrid battery --standby 0.08 --alarm 1.4 --chemistry li_ion --temp 95`,
		RunE: func(cmd *cobra.Command, args []string) error {
			chem, err := battery.ParseChemistry(chemistry)
			if err != nil {
				return err
			}
			in := battery.Input{
				StandbyCurrent:          standby,
				AlarmCurrent:            alarm,
				StandbyHours:            hours,
				AlarmHours:              alarmHours,
				Voltage:                 voltage,
				Chemistry:               chem,
				TemperatureF:            tempF,
				SafetyFactor:            safety,
				DischargeRateMultiplier: multiplier,
			}
			return runBattery(in)
		},
	}

	cmd.Flags().Float64Var(&standby, "standby", 0, "supervisory current in amps (required)")
	cmd.Flags().Float64Var(&alarm, "alarm", 0, "alarm current in amps (required)")
	cmd.Flags().Float64Var(&hours, "hours", 24, "required standby duration in hours")
	cmd.Flags().Float64Var(&alarmHours, "alarm-hours", 0.5, "required alarm duration in hours")
	cmd.Flags().Float64Var(&voltage, "voltage", 24, "system voltage")
	cmd.Flags().StringVar(&chemistry, "chemistry", "lead_acid", "battery chemistry: lead_acid, li_ion, nicd")
	cmd.Flags().Float64Var(&tempF, "temp", 77, "ambient temperature in °F")
	cmd.Flags().Float64Var(&safety, "safety-factor", 1.25, "capacity safety factor")
	cmd.Flags().Float64Var(&multiplier, "discharge-rate", 1.0, "alarm discharge rate multiple of C-rate")

	_ = cmd.MarkFlagRequired("standby")
	_ = cmd.MarkFlagRequired("alarm")

	return cmd
}

// runBattery computes and prints the sizing breakdown and the ranked
// standard configurations.
func runBattery(in battery.Input) error {
	b, err := battery.Calculate(in)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render("Battery Sizing"))
	printKeyValue("Standby", fmt.Sprintf("%.4f Ah (%.3fA × %.1fh)", b.StandbyAh, b.Input.StandbyCurrent, b.Input.StandbyHours))
	printKeyValue("Alarm", fmt.Sprintf("%.4f Ah (%.3fA × %.2fh)", b.AlarmAh, b.AlarmCurrentCorrected, b.Input.AlarmHours))
	if b.AlarmCurrentCorrected != b.Input.AlarmCurrent {
		printKeyValue("Peukert", fmt.Sprintf("%.3fA effective for %s at %.1fC", b.AlarmCurrentCorrected, b.Input.Chemistry, b.Input.DischargeRateMultiplier))
	}
	printKeyValue("Derating", fmt.Sprintf("%.2f @ %.0f°F", b.DeratingFactor, b.Input.TemperatureF))
	printKeyValue("Safety", fmt.Sprintf("× %.2f", b.Input.SafetyFactor))
	printKeyValue("Required", fmt.Sprintf("%.1f Ah", b.CapacityAh))

	configs := battery.Recommend(b.CapacityAh, b.Input.Voltage, b.Input.Chemistry)
	if len(configs) == 0 {
		printWarning("Required capacity exceeds all standard sizes; split across multiple power supplies")
		return nil
	}
	printNewline()
	fmt.Println(StyleTitle.Render("Recommended Configurations"))
	for i, cfg := range configs {
		marker := StyleDim.Render(fmt.Sprintf("%d.", i+1))
		fmt.Printf("  %s %s %s\n", marker, StyleValue.Render(cfg.Description),
			StyleDim.Render(fmt.Sprintf("(%.0f Ah total)", cfg.TotalAh)))
	}
	return nil
}
