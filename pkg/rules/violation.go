package rules

import (
	"fmt"
	"sort"
)

// Severity grades a compliance violation.
type Severity string

// Severity levels, mildest first.
const (
	SeverityWarning   Severity = "WARNING"
	SeverityViolation Severity = "VIOLATION"
	SeverityCritical  Severity = "CRITICAL"
)

// Rank returns a numeric rank for sorting; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityViolation:
		return 2
	case SeverityWarning:
		return 1
	}
	return 0
}

// Violation is the single violation representation used everywhere in the
// engine: circuit validation, placement checks, and notification checks all
// produce this type. Violations are ephemeral; every validation call
// regenerates them from scratch.
type Violation struct {
	RuleID      string   `json:"rule_id"`
	Severity    Severity `json:"severity"`
	DeviceID    string   `json:"device_id,omitempty"`
	CircuitID   string   `json:"circuit_id,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description"`
	Section     string   `json:"section,omitempty"`
	Remediation string   `json:"remediation,omitempty"`
	Priority    int      `json:"priority"`
}

// String renders a one-line summary suitable for logs.
func (v Violation) String() string {
	subject := v.DeviceID
	if subject == "" {
		subject = v.CircuitID
	}
	if subject == "" {
		subject = "system"
	}
	return fmt.Sprintf("[%s] %s: %s (%s)", v.Severity, subject, v.Description, v.Section)
}

// SortViolations orders violations most severe first, then by priority rank,
// then by rule ID for a stable report layout.
func SortViolations(vs []Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.RuleID < b.RuleID
	})
}
