package circuit

// CalculateVoltageDrop walks the circuit's devices in insertion order,
// accumulating wire distance and line current, and populates each device's
// VoltageDrop along with the circuit's aggregate outputs.
//
// The line current at device i is the sum of the contributions of devices
// 0..i: standby currents for SLC circuits (continuous supervision load),
// alarm currents otherwise (worst-case simultaneous activation). Loop
// resistance doubles the one-way run for the return conductor:
//
//	drop[i] = lineCurrent[i] × resistancePerFt × cumulativeDistance[i] × 2
//
// With non-negative wire distances the drop is non-decreasing along the
// device order. Distances are validated at the input boundary, not here.
// An empty device list is a no-op apart from zeroing the aggregates.
func CalculateVoltageDrop(c *Circuit) {
	c.TotalLength = 0
	c.StandbyCurrent = 0
	c.AlarmCurrent = 0
	c.MaxVoltageDrop = 0
	c.DropPercent = 0

	var cumulative, lineCurrent float64
	for i := range c.Devices {
		d := &c.Devices[i]
		cumulative += d.WireDistance
		lineCurrent += c.LineCurrent(*d)

		loopResistance := c.Wire.ResistancePft * cumulative * 2
		d.VoltageDrop = lineCurrent * loopResistance

		if d.VoltageDrop > c.MaxVoltageDrop {
			c.MaxVoltageDrop = d.VoltageDrop
		}
		c.StandbyCurrent += d.Spec.StandbyCurrent
		c.AlarmCurrent += d.Spec.AlarmCurrent
	}
	c.TotalLength = cumulative

	if c.PanelVoltage > 0 {
		c.DropPercent = c.MaxVoltageDrop / c.PanelVoltage * 100
	}
}
