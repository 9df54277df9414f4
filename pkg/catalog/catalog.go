package catalog

import (
	"sort"

	"github.com/firegrid/firegrid/pkg/errors"
)

// Catalog is an immutable collection of device specifications, wire
// specifications, and NFPA rules. Construct one with [New], [Builtin],
// [LoadFile], or [MongoStore.Load]; after construction it is read-only and
// safe for concurrent use.
type Catalog struct {
	devices map[string]DeviceSpecification
	wires   map[int]WireSpecification
	rules   map[string]NFPARule
}

// New builds a catalog from the given specifications. Later duplicates win,
// which lets callers layer a site catalog over the builtin one.
func New(devices []DeviceSpecification, wires []WireSpecification, rules []NFPARule) *Catalog {
	c := &Catalog{
		devices: make(map[string]DeviceSpecification, len(devices)),
		wires:   make(map[int]WireSpecification, len(wires)),
		rules:   make(map[string]NFPARule, len(rules)),
	}
	for _, d := range devices {
		c.devices[d.Model] = d
	}
	for _, w := range wires {
		c.wires[w.GaugeAWG] = w
	}
	for _, r := range rules {
		c.rules[r.ID] = r
	}
	return c
}

// Device looks up a device specification by model identifier.
// A miss returns a CATALOG_NOT_FOUND error, never a default spec.
func (c *Catalog) Device(model string) (DeviceSpecification, error) {
	d, ok := c.devices[model]
	if !ok {
		return DeviceSpecification{}, errors.New(errors.ErrCodeCatalogNotFound,
			"unknown device model: %s", model)
	}
	return d, nil
}

// Wire looks up a wire specification by AWG gauge.
func (c *Catalog) Wire(gauge int) (WireSpecification, error) {
	w, ok := c.wires[gauge]
	if !ok {
		return WireSpecification{}, errors.New(errors.ErrCodeCatalogNotFound,
			"unknown wire gauge: %d AWG", gauge)
	}
	return w, nil
}

// Rule looks up an NFPA rule by identifier.
func (c *Catalog) Rule(id string) (NFPARule, error) {
	r, ok := c.rules[id]
	if !ok {
		return NFPARule{}, errors.New(errors.ErrCodeCatalogNotFound,
			"unknown rule: %s", id)
	}
	return r, nil
}

// RulesByCategory returns all rules in the given category, sorted by ID.
func (c *Catalog) RulesByCategory(category string) []NFPARule {
	var out []NFPARule
	for _, r := range c.rules {
		if r.Category == category {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Devices returns all device specifications sorted by model.
func (c *Catalog) Devices() []DeviceSpecification {
	out := make([]DeviceSpecification, 0, len(c.devices))
	for _, d := range c.devices {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out
}

// Wires returns all wire specifications sorted thickest first.
func (c *Catalog) Wires() []WireSpecification {
	out := make([]WireSpecification, 0, len(c.wires))
	for _, w := range c.wires {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GaugeAWG < out[j].GaugeAWG })
	return out
}

// Rules returns all rules sorted by ID.
func (c *Catalog) Rules() []NFPARule {
	out := make([]NFPARule, 0, len(c.rules))
	for _, r := range c.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Merge returns a new catalog containing everything in c, with entries from
// overlay replacing entries that share a key.
func (c *Catalog) Merge(overlay *Catalog) *Catalog {
	merged := New(c.Devices(), c.Wires(), c.Rules())
	for _, d := range overlay.Devices() {
		merged.devices[d.Model] = d
	}
	for _, w := range overlay.Wires() {
		merged.wires[w.GaugeAWG] = w
	}
	for _, r := range overlay.Rules() {
		merged.rules[r.ID] = r
	}
	return merged
}
