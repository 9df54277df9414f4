// Package project loads fire alarm system designs from YAML project files
// and assembles them into calculable circuits and reviewable placement data.
//
// A project file is the bridge between the CAD layer and the engine: it
// carries panels, rooms, circuits, and device placements by catalog model
// name. All electrical specifications come from the catalog at build time;
// the project file never embeds them.
package project

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/firegrid/firegrid/pkg/catalog"
	"github.com/firegrid/firegrid/pkg/circuit"
	"github.com/firegrid/firegrid/pkg/errors"
	"github.com/firegrid/firegrid/pkg/rules"
)

// DevicePlacement positions one catalog device in the design. Wire
// distance is feet of cable from the previous device on the circuit (the
// panel for the first device); mounting height is inches above finished
// floor.
type DevicePlacement struct {
	ID             string  `yaml:"id" json:"id" validate:"required"`
	Model          string  `yaml:"model" json:"model" validate:"required"`
	WireDistance   float64 `yaml:"wire_distance" json:"wire_distance" validate:"gte=0"`
	X              float64 `yaml:"x" json:"x"`
	Y              float64 `yaml:"y" json:"y"`
	Room           string  `yaml:"room" json:"room,omitempty"`
	MountingHeight float64 `yaml:"mounting_height" json:"mounting_height,omitempty" validate:"gte=0"`
	WallDistance   float64 `yaml:"wall_distance" json:"wall_distance,omitempty" validate:"gte=0"`
	ExitDistance   float64 `yaml:"exit_distance" json:"exit_distance,omitempty" validate:"gte=0"`
}

// CircuitSpec is one panel output circuit and its ordered device chain.
type CircuitSpec struct {
	ID      string            `yaml:"id" json:"id" validate:"required"`
	Type    string            `yaml:"type" json:"type" validate:"required,oneof=SLC NAC IDC POWER"`
	Gauge   int               `yaml:"gauge" json:"gauge,omitempty" validate:"omitempty,oneof=12 14 16 18 22"`
	Devices []DevicePlacement `yaml:"devices" json:"devices" validate:"dive"`
}

// Panel is a fire alarm control panel and its circuits.
type Panel struct {
	ID       string        `yaml:"id" json:"id" validate:"required"`
	Voltage  float64       `yaml:"voltage" json:"voltage,omitempty" validate:"gte=0"`
	Circuits []CircuitSpec `yaml:"circuits" json:"circuits" validate:"dive"`
}

// Room is an occupied area the design must cover.
type Room struct {
	ID   string  `yaml:"id" json:"id" validate:"required"`
	Area float64 `yaml:"area" json:"area" validate:"gt=0"`
}

// System is the root of a project file. The same shape is accepted inline
// as JSON over the API, so json tags mirror the yaml ones.
type System struct {
	Name   string  `yaml:"name" json:"name,omitempty"`
	Panels []Panel `yaml:"panels" json:"panels" validate:"required,min=1,dive"`
	Rooms  []Room  `yaml:"rooms" json:"rooms,omitempty" validate:"dive"`
}

// Defaults applied to omitted project fields.
const (
	defaultPanelVoltage = 24
	defaultGaugeAWG     = 16
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes and validates a project document.
func Parse(data []byte) (*System, error) {
	var s System
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse project file")
	}
	if err := validate.Struct(&s); err != nil {
		return nil, invalidProject(err)
	}
	return &s, nil
}

// Load reads and parses a project file from disk.
func Load(path string) (*System, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "project file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "failed to read project file")
	}
	return Parse(data)
}

// invalidProject flattens validator field errors into one readable message.
func invalidProject(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidProject, err, "invalid project file")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return errors.New(errors.ErrCodeInvalidProject,
		"invalid project file: %s", strings.Join(fields, ", "))
}

// Circuits assembles calculable circuits from the project, resolving
// every device model and wire gauge against the catalog. Unknown models
// and gauges are errors, never silently defaulted.
func (s *System) Circuits(cat *catalog.Catalog) ([]*circuit.Circuit, error) {
	if cat == nil {
		cat = catalog.Builtin()
	}

	var out []*circuit.Circuit
	for _, p := range s.Panels {
		voltage := p.Voltage
		if voltage == 0 {
			voltage = defaultPanelVoltage
		}
		for _, cs := range p.Circuits {
			gauge := cs.Gauge
			if gauge == 0 {
				gauge = defaultGaugeAWG
			}
			wire, err := cat.Wire(gauge)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidProject, err,
					"circuit %s: unknown wire gauge %d AWG", cs.ID, gauge)
			}

			c := &circuit.Circuit{
				ID:           cs.ID,
				Type:         circuit.Type(cs.Type),
				PanelVoltage: voltage,
				Wire:         wire,
			}
			for _, dp := range cs.Devices {
				// Inline systems arrive here without passing through Parse,
				// so the calculator's distance contract is enforced again.
				if err := errors.ValidateWireDistance(dp.WireDistance); err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidProject, err,
						"circuit %s: device %s", cs.ID, dp.ID)
				}
				spec, err := cat.Device(dp.Model)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidProject, err,
						"circuit %s: device %s references unknown model %q",
						cs.ID, dp.ID, dp.Model)
				}
				c.Devices = append(c.Devices, circuit.Device{
					ID:           dp.ID,
					Spec:         spec,
					X:            dp.X,
					Y:            dp.Y,
					WireDistance: dp.WireDistance,
				})
			}
			out = append(out, c)
		}
	}
	return out, nil
}

// PlacedDevices resolves every device placement in the project against the
// catalog for rule evaluation.
func (s *System) PlacedDevices(cat *catalog.Catalog) ([]rules.PlacedDevice, error) {
	if cat == nil {
		cat = catalog.Builtin()
	}

	var out []rules.PlacedDevice
	for _, p := range s.Panels {
		for _, cs := range p.Circuits {
			for _, dp := range cs.Devices {
				spec, err := cat.Device(dp.Model)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidProject, err,
						"device %s references unknown model %q", dp.ID, dp.Model)
				}
				out = append(out, rules.PlacedDevice{
					ID:             dp.ID,
					Spec:           spec,
					X:              dp.X,
					Y:              dp.Y,
					Room:           dp.Room,
					MountingHeight: dp.MountingHeight,
					WallDistance:   dp.WallDistance,
					ExitDistance:   dp.ExitDistance,
				})
			}
		}
	}
	return out, nil
}

// Review assembles the complete rule-engine input from the project's
// placements, its rooms, and the given calculated circuits.
func (s *System) Review(cat *catalog.Catalog, circuits []*circuit.Circuit) (rules.SystemReview, error) {
	devices, err := s.PlacedDevices(cat)
	if err != nil {
		return rules.SystemReview{}, err
	}

	sys := rules.SystemReview{Devices: devices}
	for _, r := range s.Rooms {
		sys.Rooms = append(sys.Rooms, rules.Room{ID: r.ID, Area: r.Area})
	}
	for _, c := range circuits {
		sys.Circuits = append(sys.Circuits, c.Status())
	}
	return sys, nil
}
