package catalog

// DeviceType classifies a fire-alarm device by function.
type DeviceType string

// Device types supported by the engine.
const (
	DeviceSmokeDetector DeviceType = "smoke_detector"
	DeviceHeatDetector  DeviceType = "heat_detector"
	DeviceDuctDetector  DeviceType = "duct_detector"
	DevicePullStation   DeviceType = "pull_station"
	DeviceHorn          DeviceType = "horn"
	DeviceStrobe        DeviceType = "strobe"
	DeviceHornStrobe    DeviceType = "horn_strobe"
	DeviceModule        DeviceType = "module"
)

// IsDetection reports whether the type is an automatic initiating device.
func (t DeviceType) IsDetection() bool {
	switch t {
	case DeviceSmokeDetector, DeviceHeatDetector, DeviceDuctDetector:
		return true
	}
	return false
}

// IsManual reports whether the type is a manual activation device.
func (t DeviceType) IsManual() bool { return t == DevicePullStation }

// IsNotification reports whether the type is a notification appliance.
func (t DeviceType) IsNotification() bool {
	switch t {
	case DeviceHorn, DeviceStrobe, DeviceHornStrobe:
		return true
	}
	return false
}

// IsAudible reports whether the type produces an audible signal.
func (t DeviceType) IsAudible() bool {
	return t == DeviceHorn || t == DeviceHornStrobe
}

// IsVisible reports whether the type produces a visible signal.
func (t DeviceType) IsVisible() bool {
	return t == DeviceStrobe || t == DeviceHornStrobe
}

// DeviceSpecification describes the electrical and placement characteristics
// of a catalog device. Specifications are immutable once loaded; calculators
// receive them by value.
//
// Voltages are volts DC, currents are amperes, areas square feet, linear
// placement dimensions feet, and mounting heights inches above finished
// floor. Wire gauge bounds follow AWG convention: a smaller number is a
// thicker conductor, so GaugeMin is the thickest and GaugeMax the thinnest
// wire the device terminals accept.
type DeviceSpecification struct {
	Model          string     `toml:"model" json:"model" bson:"model"`
	Type           DeviceType `toml:"type" json:"type" bson:"type"`
	Description    string     `toml:"description,omitempty" json:"description,omitempty" bson:"description,omitempty"`
	VoltageMin     float64    `toml:"voltage_min" json:"voltage_min" bson:"voltage_min"`
	VoltageMax     float64    `toml:"voltage_max" json:"voltage_max" bson:"voltage_max"`
	VoltageNominal float64    `toml:"voltage_nominal" json:"voltage_nominal" bson:"voltage_nominal"`
	StandbyCurrent float64    `toml:"standby_current" json:"standby_current" bson:"standby_current"`
	AlarmCurrent   float64    `toml:"alarm_current" json:"alarm_current" bson:"alarm_current"`
	CoverageArea   float64    `toml:"coverage_area,omitempty" json:"coverage_area,omitempty" bson:"coverage_area,omitempty"`
	MaxSpacing     float64    `toml:"max_spacing,omitempty" json:"max_spacing,omitempty" bson:"max_spacing,omitempty"`
	MinWallDist    float64    `toml:"min_wall_distance,omitempty" json:"min_wall_distance,omitempty" bson:"min_wall_distance,omitempty"`
	MountHeightMin float64    `toml:"mount_height_min,omitempty" json:"mount_height_min,omitempty" bson:"mount_height_min,omitempty"`
	MountHeightMax float64    `toml:"mount_height_max,omitempty" json:"mount_height_max,omitempty" bson:"mount_height_max,omitempty"`
	GaugeMin       int        `toml:"gauge_min" json:"gauge_min" bson:"gauge_min"`
	GaugeMax       int        `toml:"gauge_max" json:"gauge_max" bson:"gauge_max"`
	EOLResistor    float64    `toml:"eol_resistor,omitempty" json:"eol_resistor,omitempty" bson:"eol_resistor,omitempty"`
	Supervised     bool       `toml:"supervised" json:"supervised" bson:"supervised"`
	Candela        float64    `toml:"candela,omitempty" json:"candela,omitempty" bson:"candela,omitempty"`

	// Extra carries non-electrical attributes (finish, listing, mounting
	// hardware). Core calculations never read it; it exists so catalog
	// files can round-trip vendor metadata without loosening the typed
	// electrical fields above.
	Extra map[string]string `toml:"extra,omitempty" json:"extra,omitempty" bson:"extra,omitempty"`
}

// AcceptsGauge reports whether the device terminals accept the given AWG
// gauge. A zero gauge window accepts any gauge.
func (d DeviceSpecification) AcceptsGauge(awg int) bool {
	if d.GaugeMin == 0 && d.GaugeMax == 0 {
		return true
	}
	return awg >= d.GaugeMin && awg <= d.GaugeMax
}

// HasEOLResistor reports whether the device terminates a supervised circuit
// with an end-of-line resistor.
func (d DeviceSpecification) HasEOLResistor() bool { return d.EOLResistor > 0 }
