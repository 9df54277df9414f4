// Package report aggregates rule violations into a compliance report with
// a headline percentage and an overall pass/fail status.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/firegrid/firegrid/pkg/rules"
)

// Overall status values.
const (
	StatusCompliant    = "COMPLIANT"
	StatusNonCompliant = "NON-COMPLIANT"
)

// baselineChecks is the number of system-level checks counted as passed
// when no violation references them. It anchors the percentage so a
// system with a single violation does not score 0%.
const baselineChecks = 10

// Report is the outcome of a full compliance evaluation.
type Report struct {
	ID          uuid.UUID `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`

	CompliancePercent float64 `json:"compliance_percentage"`
	OverallStatus     string  `json:"overall_status"`
	TotalChecks       int     `json:"total_checks"`

	Critical   []rules.Violation `json:"critical"`
	Violations []rules.Violation `json:"violations"`
	Warnings   []rules.Violation `json:"warnings"`
}

// Counts returns the number of findings at each severity.
func (r Report) Counts() (critical, violations, warnings int) {
	return len(r.Critical), len(r.Violations), len(r.Warnings)
}

// TotalFindings returns the number of findings across all severities.
func (r Report) TotalFindings() int {
	return len(r.Critical) + len(r.Violations) + len(r.Warnings)
}

// Generate partitions the violations by severity and computes the
// compliance percentage. Warnings count against neither the percentage
// nor the overall status; any CRITICAL or VIOLATION finding makes the
// system non-compliant.
func Generate(violations []rules.Violation) Report {
	r := Report{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
	}

	sorted := make([]rules.Violation, len(violations))
	copy(sorted, violations)
	rules.SortViolations(sorted)

	for _, v := range sorted {
		switch v.Severity {
		case rules.SeverityCritical:
			r.Critical = append(r.Critical, v)
		case rules.SeverityViolation:
			r.Violations = append(r.Violations, v)
		default:
			r.Warnings = append(r.Warnings, v)
		}
	}

	r.TotalChecks = len(violations) + baselineChecks
	failed := len(r.Critical) + len(r.Violations)
	pct := float64(r.TotalChecks-failed) / float64(r.TotalChecks) * 100
	if pct < 0 {
		pct = 0
	}
	r.CompliancePercent = pct

	if failed == 0 {
		r.OverallStatus = StatusCompliant
	} else {
		r.OverallStatus = StatusNonCompliant
	}
	return r
}
