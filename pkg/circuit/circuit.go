// Package circuit models signaling and notification circuits and implements
// the voltage-drop calculator, the compliance validator, and the wire-gauge
// optimizer.
//
// A [Circuit] is mutable working state built per design session from catalog
// specifications and placement data. Calculation passes mutate it in place:
// [CalculateVoltageDrop] populates the electrical fields, then
// [ValidateCompliance] populates Violations and Valid. Violations are
// regenerated on every validation call, never accumulated across calls.
//
// Catalogs are shared and read-only; each caller must own its own Circuit
// graph. No locking is performed.
package circuit

import (
	"github.com/firegrid/firegrid/pkg/catalog"
	"github.com/firegrid/firegrid/pkg/rules"
)

// Type is the circuit class.
type Type string

// Circuit classes.
const (
	TypeSLC   Type = "SLC"   // signaling line circuit: addressable initiating devices
	TypeNAC   Type = "NAC"   // notification appliance circuit: horns and strobes
	TypeIDC   Type = "IDC"   // initiating device circuit: conventional detectors
	TypePower Type = "POWER" // auxiliary power circuit
)

// Device is one device on a circuit. WireDistance is the wire run in feet
// from the previous node (the panel for the first device). VoltageDrop is a
// calculation output: the cumulative drop at this device's terminals.
type Device struct {
	ID           string
	Spec         catalog.DeviceSpecification
	X, Y         float64
	WireDistance float64
	VoltageDrop  float64
}

// TerminalVoltage returns the voltage available at the device given the
// panel voltage.
func (d Device) TerminalVoltage(panelVoltage float64) float64 {
	return panelVoltage - d.VoltageDrop
}

// Circuit is a panel output circuit with its ordered device list and
// aggregate calculation outputs. Device order defines monotonically
// increasing cumulative wire distance from the panel.
type Circuit struct {
	ID           string
	Type         Type
	PanelVoltage float64
	Wire         catalog.WireSpecification
	Devices      []Device

	// Outputs of CalculateVoltageDrop.
	TotalLength    float64 // ft of wire run (one way)
	StandbyCurrent float64 // A, sum of device standby currents
	AlarmCurrent   float64 // A, sum of device alarm currents
	MaxVoltageDrop float64 // V at the worst-case device
	DropPercent    float64 // MaxVoltageDrop / PanelVoltage × 100

	// Outputs of ValidateCompliance.
	Valid      bool
	Violations []rules.Violation
}

// Clone returns a deep copy sharing no mutable state with the receiver.
// The optimizer clones circuits so trial gauges never disturb the caller's
// working state.
func (c *Circuit) Clone() *Circuit {
	out := *c
	out.Devices = make([]Device, len(c.Devices))
	copy(out.Devices, c.Devices)
	out.Violations = append([]rules.Violation(nil), c.Violations...)
	return &out
}

// LineCurrent returns the supervisory or alarm current a device contributes
// to its circuit's line current, depending on the circuit class. SLC devices
// draw their standby current continuously; everything else is sized for
// worst-case simultaneous alarm.
func (c *Circuit) LineCurrent(d Device) float64 {
	if c.Type == TypeSLC {
		return d.Spec.StandbyCurrent
	}
	return d.Spec.AlarmCurrent
}

// EOLVoltagePercent returns the end-of-line device's terminal voltage as a
// percentage of panel voltage, or 0 when the circuit is empty or not yet
// calculated.
func (c *Circuit) EOLVoltagePercent() float64 {
	if len(c.Devices) == 0 || c.PanelVoltage <= 0 {
		return 0
	}
	last := c.Devices[len(c.Devices)-1]
	return last.TerminalVoltage(c.PanelVoltage) / c.PanelVoltage * 100
}

// Supervised reports whether every device on the circuit is a supervised
// type. An empty circuit is not supervised.
func (c *Circuit) Supervised() bool {
	if len(c.Devices) == 0 {
		return false
	}
	for _, d := range c.Devices {
		if !d.Spec.Supervised {
			return false
		}
	}
	return true
}

// HasEOLResistor reports whether the last device terminates the circuit
// with an end-of-line resistor.
func (c *Circuit) HasEOLResistor() bool {
	if len(c.Devices) == 0 {
		return false
	}
	return c.Devices[len(c.Devices)-1].Spec.HasEOLResistor()
}

// Status summarizes the circuit for the rule engine.
func (c *Circuit) Status() rules.CircuitStatus {
	return rules.CircuitStatus{
		ID:                c.ID,
		Type:              string(c.Type),
		DropPercent:       c.DropPercent,
		EOLVoltagePercent: c.EOLVoltagePercent(),
		Supervised:        c.Supervised(),
		HasEOLResistor:    c.HasEOLResistor(),
	}
}
