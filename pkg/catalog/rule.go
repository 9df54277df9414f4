package catalog

// Rule categories used to group NFPA-derived rules by check domain.
const (
	CategorySpacing      = "spacing"
	CategoryPullStation  = "pull_station"
	CategoryCircuit      = "circuit"
	CategoryNotification = "notification"
	CategorySystem       = "system"
)

// NFPARule is a numeric rule derived from a section of NFPA 72 (or a related
// code). Requirements hold the section's numeric thresholds keyed by name;
// the templates provide human-readable violation and remediation text.
//
// Rules are data, not code: the rule engine interprets Requirements by key,
// so a site can tighten a threshold in its catalog file without rebuilding.
type NFPARule struct {
	ID            string             `toml:"id" json:"id" bson:"id"`
	Section       string             `toml:"section" json:"section" bson:"section"`
	Category      string             `toml:"category" json:"category" bson:"category"`
	Title         string             `toml:"title,omitempty" json:"title,omitempty" bson:"title,omitempty"`
	Requirements  map[string]float64 `toml:"requirements" json:"requirements" bson:"requirements"`
	ViolationText string             `toml:"violation_text,omitempty" json:"violation_text,omitempty" bson:"violation_text,omitempty"`
	Remediation   string             `toml:"remediation,omitempty" json:"remediation,omitempty" bson:"remediation,omitempty"`
}

// Requirement returns the named numeric threshold, or the fallback when the
// rule does not define it. Thresholds are always read through this accessor
// so a partially-specified site rule falls back to the code default instead
// of an accidental zero.
func (r NFPARule) Requirement(name string, fallback float64) float64 {
	if v, ok := r.Requirements[name]; ok {
		return v
	}
	return fallback
}
