package catalog

// WireSpecification describes a single conductor size. Resistance is ohms
// per foot of one conductor at 75°C; the voltage-drop calculator doubles it
// for the loop (out and back).
type WireSpecification struct {
	GaugeAWG      int     `toml:"gauge" json:"gauge" bson:"gauge"`
	ResistancePft float64 `toml:"resistance_per_ft" json:"resistance_per_ft" bson:"resistance_per_ft"`
	MaxCurrent    float64 `toml:"max_current" json:"max_current" bson:"max_current"`
	VoltageRating float64 `toml:"voltage_rating" json:"voltage_rating" bson:"voltage_rating"`
	Insulation    string  `toml:"insulation,omitempty" json:"insulation,omitempty" bson:"insulation,omitempty"`
}

// ThickerThan reports whether the wire is at least as thick as the given
// AWG gauge. AWG numbers shrink as conductors get thicker.
func (w WireSpecification) ThickerThan(awg int) bool {
	return w.GaugeAWG <= awg
}
