package circuit

import (
	"github.com/firegrid/firegrid/pkg/catalog"
)

// SupportedGauges is the fixed gauge set the optimizer searches, thickest
// first. The search is exhaustive: five bounded trials, no early exit.
var SupportedGauges = []int{12, 14, 16, 18, 22}

// WireSource resolves AWG gauges to wire specifications.
// *catalog.Catalog satisfies it.
type WireSource interface {
	Wire(gauge int) (catalog.WireSpecification, error)
}

// OptimizeWireGauge searches SupportedGauges for compliant wire choices.
// Each candidate is tried on a clone through the same calculate-then-validate
// path used for manually chosen gauges; there is no validation bypass.
//
// Among the gauges that pass, the circuit is left on the one with the
// largest AWG number — the thinnest and cheapest compliant wire. The
// returned slice lists all passing gauges in thickest-first order.
//
// When no gauge passes, the returned slice is empty and the circuit is left
// on the last-tried (thinnest) spec with its violations populated. Callers
// must treat an empty result as "no compliant design exists" rather than
// accepting the leftover state.
//
// A gauge missing from the source is an error: the supported set is part of
// the engine contract and a catalog that cannot resolve it is malformed.
func OptimizeWireGauge(c *Circuit, wires WireSource, limits Limits) ([]int, error) {
	valid := make([]int, 0, len(SupportedGauges))
	var lastTried catalog.WireSpecification

	for _, gauge := range SupportedGauges {
		spec, err := wires.Wire(gauge)
		if err != nil {
			return nil, err
		}
		lastTried = spec

		trial := c.Clone()
		trial.Wire = spec
		CalculateVoltageDrop(trial)
		ValidateCompliance(trial, limits)
		if trial.Valid {
			valid = append(valid, gauge)
		}
	}

	// SupportedGauges is ordered thickest first, so the last passing entry
	// is the thinnest compliant wire.
	chosen := lastTried
	if len(valid) > 0 {
		spec, err := wires.Wire(valid[len(valid)-1])
		if err != nil {
			return nil, err
		}
		chosen = spec
	}

	c.Wire = chosen
	CalculateVoltageDrop(c)
	ValidateCompliance(c, limits)

	return valid, nil
}
