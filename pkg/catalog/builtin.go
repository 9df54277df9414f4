package catalog

// Builtin returns the compiled-in catalog: a set of common fire-alarm
// devices, standard solid-copper wire resistances, and the NFPA 72 derived
// rule set. Sites typically start from this catalog and overlay their own
// equipment with [Catalog.Merge].
func Builtin() *Catalog {
	return New(builtinDevices, builtinWires, builtinRules)
}

// builtinDevices lists representative addressable and conventional devices.
// Currents are amperes at 24 VDC nominal.
var builtinDevices = []DeviceSpecification{
	{
		Model:          "SD-355",
		Type:           DeviceSmokeDetector,
		Description:    "Addressable photoelectric smoke detector",
		VoltageMin:     15, VoltageMax: 32, VoltageNominal: 24,
		StandbyCurrent: 0.0003, AlarmCurrent: 0.0065,
		CoverageArea:   900, MaxSpacing: 30, MinWallDist: 0.33,
		GaugeMin:       12, GaugeMax: 22,
		Supervised:     true,
	},
	{
		Model:          "HD-135",
		Type:           DeviceHeatDetector,
		Description:    "Fixed-temperature heat detector, 135°F",
		VoltageMin:     15, VoltageMax: 32, VoltageNominal: 24,
		StandbyCurrent: 0.0003, AlarmCurrent: 0.0065,
		CoverageArea:   2500, MaxSpacing: 50, MinWallDist: 0.33,
		GaugeMin:       12, GaugeMax: 22,
		Supervised:     true,
	},
	{
		Model:          "DD-100",
		Type:           DeviceDuctDetector,
		Description:    "Duct smoke detector with sampling tube",
		VoltageMin:     15, VoltageMax: 32, VoltageNominal: 24,
		StandbyCurrent: 0.0008, AlarmCurrent: 0.012,
		GaugeMin:       12, GaugeMax: 22,
		Supervised:     true,
	},
	{
		Model:          "BG-12",
		Type:           DevicePullStation,
		Description:    "Dual-action manual pull station",
		VoltageMin:     15, VoltageMax: 32, VoltageNominal: 24,
		StandbyCurrent: 0.0003, AlarmCurrent: 0.005,
		MountHeightMin: 42, MountHeightMax: 48,
		GaugeMin:       12, GaugeMax: 22,
		Supervised:     true,
	},
	{
		Model:          "P2R",
		Type:           DeviceHornStrobe,
		Description:    "Wall horn/strobe, 15 cd",
		VoltageMin:     16, VoltageMax: 33, VoltageNominal: 24,
		StandbyCurrent: 0, AlarmCurrent: 0.177,
		MountHeightMin: 80, MountHeightMax: 96,
		GaugeMin:       12, GaugeMax: 18,
		Candela:        15,
	},
	{
		Model:          "P2R-75",
		Type:           DeviceHornStrobe,
		Description:    "Wall horn/strobe, 75 cd",
		VoltageMin:     16, VoltageMax: 33, VoltageNominal: 24,
		StandbyCurrent: 0, AlarmCurrent: 0.223,
		MountHeightMin: 80, MountHeightMax: 96,
		GaugeMin:       12, GaugeMax: 18,
		Candela:        75,
	},
	{
		Model:          "HRN",
		Type:           DeviceHorn,
		Description:    "Wall horn",
		VoltageMin:     16, VoltageMax: 33, VoltageNominal: 24,
		StandbyCurrent: 0, AlarmCurrent: 0.044,
		MountHeightMin: 80, MountHeightMax: 96,
		GaugeMin:       12, GaugeMax: 18,
	},
	{
		Model:          "STR-15",
		Type:           DeviceStrobe,
		Description:    "Wall strobe, 15 cd",
		VoltageMin:     16, VoltageMax: 33, VoltageNominal: 24,
		StandbyCurrent: 0, AlarmCurrent: 0.066,
		MountHeightMin: 80, MountHeightMax: 96,
		GaugeMin:       12, GaugeMax: 18,
		Candela:        15,
	},
	{
		Model:          "STR-110",
		Type:           DeviceStrobe,
		Description:    "Wall strobe, 110 cd",
		VoltageMin:     16, VoltageMax: 33, VoltageNominal: 24,
		StandbyCurrent: 0, AlarmCurrent: 0.202,
		MountHeightMin: 80, MountHeightMax: 96,
		GaugeMin:       12, GaugeMax: 18,
		Candela:        110,
	},
	{
		Model:          "MM-1",
		Type:           DeviceModule,
		Description:    "Addressable monitor module",
		VoltageMin:     15, VoltageMax: 32, VoltageNominal: 24,
		StandbyCurrent: 0.000375, AlarmCurrent: 0.005,
		GaugeMin:       12, GaugeMax: 22,
		EOLResistor:    47000,
		Supervised:     true,
	},
}

// builtinWires lists solid copper conductors. Resistance is ohms per foot of
// a single conductor at 75°C (NEC chapter 9, table 8 values).
var builtinWires = []WireSpecification{
	{GaugeAWG: 12, ResistancePft: 0.001588, MaxCurrent: 20, VoltageRating: 300, Insulation: "FPLR"},
	{GaugeAWG: 14, ResistancePft: 0.002525, MaxCurrent: 15, VoltageRating: 300, Insulation: "FPLR"},
	{GaugeAWG: 16, ResistancePft: 0.004016, MaxCurrent: 8, VoltageRating: 300, Insulation: "FPLR"},
	{GaugeAWG: 18, ResistancePft: 0.006385, MaxCurrent: 6, VoltageRating: 300, Insulation: "FPLR"},
	{GaugeAWG: 22, ResistancePft: 0.01614, MaxCurrent: 3, VoltageRating: 300, Insulation: "FPLR"},
}

// builtinRules is the NFPA 72 derived rule set. Thresholds live in the
// Requirements maps so a site catalog can tighten them without code changes.
var builtinRules = []NFPARule{
	{
		ID:       "NFPA72-17.5.3.1",
		Section:  "NFPA 72 17.5.3.1",
		Category: CategorySpacing,
		Title:    "Smoke detector spacing",
		Requirements: map[string]float64{
			"max_spacing_ft":       30,
			"max_wall_distance_ft": 15,
		},
		ViolationText: "smoke detectors spaced beyond the listed maximum",
		Remediation:   "add detectors or relocate so no spacing exceeds the listed maximum",
	},
	{
		ID:       "NFPA72-17.6.3.1",
		Section:  "NFPA 72 17.6.3.1.1",
		Category: CategorySpacing,
		Title:    "Heat detector spacing",
		Requirements: map[string]float64{
			"max_spacing_ft":       50,
			"max_wall_distance_ft": 25,
		},
		ViolationText: "heat detectors spaced beyond the listed maximum",
		Remediation:   "add detectors or relocate so no spacing exceeds the listed maximum",
	},
	{
		ID:       "NFPA72-17.14.8",
		Section:  "NFPA 72 17.14.8",
		Category: CategoryPullStation,
		Title:    "Manual pull station placement",
		Requirements: map[string]float64{
			"mount_height_min_in":  42,
			"mount_height_max_in":  48,
			"max_exit_distance_ft": 5,
		},
		ViolationText: "pull station mounted outside the 42-48 in window or too far from an exit",
		Remediation:   "remount between 42 and 48 inches and within 5 ft of each exit",
	},
	{
		ID:       "NFPA72-23.6.1",
		Section:  "NFPA 72 23.6.1",
		Category: CategoryCircuit,
		Title:    "Circuit electrical integrity",
		Requirements: map[string]float64{
			"max_voltage_drop_percent": 10,
			"min_eol_voltage_percent":  85,
		},
		ViolationText: "circuit voltage drop or end-of-line voltage outside limits",
		Remediation:   "use a thicker wire gauge, shorten runs, or split the circuit",
	},
	{
		ID:       "NFPA72-18.5.5",
		Section:  "NFPA 72 18.5.5",
		Category: CategoryNotification,
		Title:    "Visible appliance mounting and intensity",
		Requirements: map[string]float64{
			"mount_height_min_in": 80,
			"mount_height_max_in": 96,
		},
		ViolationText: "strobe mounted outside the 80-96 in window or under-rated for the room",
		Remediation:   "remount between 80 and 96 inches or select a higher-candela appliance",
	},
	{
		ID:            "NFPA72-18.4.3",
		Section:       "NFPA 72 18.4.3",
		Category:      CategoryNotification,
		Title:         "Audible and visible coverage",
		Requirements:  map[string]float64{},
		ViolationText: "occupied area lacks audible or visible notification",
		Remediation:   "add horn and strobe appliances to the area",
	},
	{
		ID:            "NFPA72-17.1",
		Section:       "NFPA 72 chapter 17",
		Category:      CategorySystem,
		Title:         "Automatic detection required",
		Requirements:  map[string]float64{},
		ViolationText: "system has no automatic detection devices",
		Remediation:   "add smoke or heat detectors to the design",
	},
	{
		ID:            "NFPA72-17.14",
		Section:       "NFPA 72 17.14",
		Category:      CategorySystem,
		Title:         "Manual activation required",
		Requirements:  map[string]float64{},
		ViolationText: "system has no manual pull stations",
		Remediation:   "add a pull station at each exit",
	},
	{
		ID:            "NFPA72-18.1",
		Section:       "NFPA 72 chapter 18",
		Category:      CategorySystem,
		Title:         "Occupant notification required",
		Requirements:  map[string]float64{},
		ViolationText: "system has no notification appliances",
		Remediation:   "add horn and strobe appliances to the design",
	},
}
