package catalog

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/firegrid/firegrid/pkg/errors"
)

// catalogFile is the on-disk TOML structure:
//
//	[[device]]
//	model = "SD-355"
//	type = "smoke_detector"
//	voltage_min = 15.0
//	...
//
//	[[wire]]
//	gauge = 18
//	resistance_per_ft = 0.006385
//	...
//
//	[[rule]]
//	id = "NFPA72-17.5.3.1"
//	[rule.requirements]
//	max_spacing_ft = 30.0
type catalogFile struct {
	Devices []DeviceSpecification `toml:"device"`
	Wires   []WireSpecification   `toml:"wire"`
	Rules   []NFPARule            `toml:"rule"`
}

// LoadFile reads a TOML catalog file. The result contains only what the file
// declares; merge with [Builtin] if the site catalog is partial.
func LoadFile(path string) (*Catalog, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "read catalog %s", path)
	}
	return Parse(data)
}

// Parse decodes a TOML catalog from raw bytes.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse catalog")
	}

	for _, d := range f.Devices {
		if err := errors.ValidateModelName(d.Model); err != nil {
			return nil, err
		}
		if d.VoltageMin <= 0 || d.VoltageMax < d.VoltageMin {
			return nil, errors.New(errors.ErrCodeInvalidCatalog,
				"device %s: invalid voltage window [%g, %g]", d.Model, d.VoltageMin, d.VoltageMax)
		}
		if d.StandbyCurrent < 0 || d.AlarmCurrent < 0 {
			return nil, errors.New(errors.ErrCodeInvalidCatalog,
				"device %s: negative current", d.Model)
		}
	}
	for _, w := range f.Wires {
		if w.GaugeAWG <= 0 || w.ResistancePft <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidCatalog,
				"wire %d AWG: gauge and resistance must be positive", w.GaugeAWG)
		}
	}
	for _, r := range f.Rules {
		if r.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "rule with empty id")
		}
	}

	return New(f.Devices, f.Wires, f.Rules), nil
}
