// Package battery sizes standby batteries for fire alarm control panels.
// Capacity is computed from standby and alarm demand with a Peukert
// discharge correction, temperature derating, and a safety margin, then
// matched against standard commercial battery sizes.
package battery

import (
	"math"
	"strings"

	"github.com/firegrid/firegrid/pkg/errors"
)

// Chemistry identifies the battery chemistry used for Peukert correction.
type Chemistry string

const (
	ChemistryLeadAcid Chemistry = "lead_acid"
	ChemistryLiIon    Chemistry = "li_ion"
	ChemistryNiCd     Chemistry = "nicd"
)

// peukertExponents maps chemistry to its Peukert constant k. Lead-acid
// batteries lose the most usable capacity at high discharge rates.
var peukertExponents = map[Chemistry]float64{
	ChemistryLeadAcid: 1.25,
	ChemistryLiIon:    1.05,
	ChemistryNiCd:     1.15,
}

// ParseChemistry normalizes a chemistry name. It accepts common spellings
// like "lead-acid" and "liion" in addition to the canonical identifiers.
func ParseChemistry(s string) (Chemistry, error) {
	norm := strings.ReplaceAll(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"), " ", "_")
	switch norm {
	case "lead_acid", "leadacid", "sla", "agm":
		return ChemistryLeadAcid, nil
	case "li_ion", "liion", "lithium", "lithium_ion":
		return ChemistryLiIon, nil
	case "nicd", "ni_cd", "nickel_cadmium":
		return ChemistryNiCd, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown battery chemistry %q", s)
	}
}

// deratingTable holds (temperature °F, usable-capacity factor) breakpoints.
// Capacity falls off above room temperature; the factor is clamped, not
// extrapolated, outside the table.
var deratingTable = []struct {
	tempF  float64
	factor float64
}{
	{32, 1.00},
	{77, 1.00},
	{95, 0.90},
	{104, 0.80},
	{113, 0.70},
	{122, 0.60},
}

// deratingFactor interpolates the usable-capacity factor for the given
// ambient temperature.
func deratingFactor(tempF float64) float64 {
	if tempF <= deratingTable[0].tempF {
		return deratingTable[0].factor
	}
	last := deratingTable[len(deratingTable)-1]
	if tempF >= last.tempF {
		return last.factor
	}
	for i := 1; i < len(deratingTable); i++ {
		lo, hi := deratingTable[i-1], deratingTable[i]
		if tempF <= hi.tempF {
			span := hi.tempF - lo.tempF
			frac := (tempF - lo.tempF) / span
			return lo.factor + frac*(hi.factor-lo.factor)
		}
	}
	return last.factor
}

// Input describes the panel load profile to size batteries for.
type Input struct {
	StandbyCurrent float64   `json:"standby_current" yaml:"standby_current"`
	AlarmCurrent   float64   `json:"alarm_current" yaml:"alarm_current"`
	StandbyHours   float64   `json:"standby_hours" yaml:"standby_hours"`
	AlarmHours     float64   `json:"alarm_hours" yaml:"alarm_hours"`
	Voltage        float64   `json:"voltage" yaml:"voltage"`
	Chemistry      Chemistry `json:"chemistry" yaml:"chemistry"`
	TemperatureF   float64   `json:"temperature_f" yaml:"temperature_f"`
	SafetyFactor   float64   `json:"safety_factor" yaml:"safety_factor"`

	// DischargeRateMultiplier scales the alarm discharge rate relative to
	// the battery's rated rate for the Peukert correction. 1.0 means the
	// rated rate.
	DischargeRateMultiplier float64 `json:"discharge_rate_multiplier" yaml:"discharge_rate_multiplier"`
}

// SetDefaults fills zero-valued fields with the conventional NFPA 72
// sizing assumptions: 24h standby, 77°F ambient, 1.25 safety margin.
func (in *Input) SetDefaults() {
	if in.StandbyHours == 0 {
		in.StandbyHours = 24
	}
	if in.AlarmHours == 0 {
		in.AlarmHours = 0.5
	}
	if in.Voltage == 0 {
		in.Voltage = 24
	}
	if in.Chemistry == "" {
		in.Chemistry = ChemistryLeadAcid
	}
	if in.TemperatureF == 0 {
		in.TemperatureF = 77
	}
	if in.SafetyFactor == 0 {
		in.SafetyFactor = 1.25
	}
	if in.DischargeRateMultiplier == 0 {
		in.DischargeRateMultiplier = 1.0
	}
}

// Validate rejects physically meaningless inputs.
func (in Input) Validate() error {
	if in.StandbyCurrent < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "standby current must not be negative")
	}
	if in.AlarmCurrent < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "alarm current must not be negative")
	}
	if in.StandbyHours < 0 || in.AlarmHours < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "durations must not be negative")
	}
	if in.Voltage <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "system voltage must be positive")
	}
	if in.SafetyFactor < 1.0 {
		return errors.New(errors.ErrCodeInvalidInput, "safety factor must be at least 1.0")
	}
	if in.DischargeRateMultiplier <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "discharge rate multiplier must be positive")
	}
	if _, ok := peukertExponents[in.Chemistry]; !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown battery chemistry %q", in.Chemistry)
	}
	return nil
}

// Breakdown reports each stage of the sizing calculation alongside the
// final required capacity.
type Breakdown struct {
	Input Input `json:"input"`

	AlarmCurrentCorrected float64 `json:"alarm_current_corrected"`
	StandbyAh             float64 `json:"standby_ah"`
	AlarmAh               float64 `json:"alarm_ah"`
	TotalAh               float64 `json:"total_ah"`
	DeratingFactor        float64 `json:"derating_factor"`
	DeratedAh             float64 `json:"derated_ah"`
	CapacityAh            float64 `json:"capacity_ah"`
}

// Calculate sizes the battery bank for the given load profile. Zero-valued
// optional fields are defaulted first. Increasing any demand term never
// decreases the resulting capacity.
func Calculate(in Input) (Breakdown, error) {
	in.SetDefaults()
	if err := in.Validate(); err != nil {
		return Breakdown{}, err
	}

	k := peukertExponents[in.Chemistry]
	corrected := in.AlarmCurrent * math.Pow(in.DischargeRateMultiplier, k-1)

	b := Breakdown{
		Input:                 in,
		AlarmCurrentCorrected: corrected,
		StandbyAh:             in.StandbyCurrent * in.StandbyHours,
		AlarmAh:               corrected * in.AlarmHours,
		DeratingFactor:        deratingFactor(in.TemperatureF),
	}
	b.TotalAh = b.StandbyAh + b.AlarmAh
	b.DeratedAh = b.TotalAh * b.DeratingFactor
	b.CapacityAh = b.DeratedAh * in.SafetyFactor
	return b, nil
}
