// Package pipeline provides the core evaluation pipeline for Firegrid.
//
// This package implements the complete load → calculate → report pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse the project file and resolve the device catalog
//  2. Calculate: Run voltage drop, validation, gauge optimization,
//     battery sizing, and coverage analysis
//  3. Report: Evaluate the NFPA rule set and aggregate the compliance report
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ProjectPath: "office.yaml",
//	    Optimize:    true,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Report.OverallStatus)
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/firegrid/firegrid/pkg/battery"
	"github.com/firegrid/firegrid/pkg/cache"
	"github.com/firegrid/firegrid/pkg/catalog"
	"github.com/firegrid/firegrid/pkg/circuit"
	"github.com/firegrid/firegrid/pkg/coverage"
	"github.com/firegrid/firegrid/pkg/errors"
	"github.com/firegrid/firegrid/pkg/project"
	"github.com/firegrid/firegrid/pkg/report"
	"github.com/firegrid/firegrid/pkg/rules"
)

// Options contains all configuration for the evaluation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of ProjectPath or System is required.
	ProjectPath string          `json:"project_path,omitempty"`
	System      *project.System `json:"system,omitempty"`

	// CatalogPath points at a TOML catalog merged over the builtin one.
	// Catalog, when set, is used as-is and CatalogPath is ignored.
	CatalogPath string           `json:"catalog_path,omitempty"`
	Catalog     *catalog.Catalog `json:"-"`

	// Calculate options.
	Optimize bool           `json:"optimize,omitempty"`
	Battery  *battery.Input `json:"battery,omitempty"`

	// Refresh bypasses the report cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ProjectPath == "" && o.System == nil {
		return errors.New(errors.ErrCodeInvalidInput, "project path or system is required")
	}
	if o.ProjectPath != "" && o.System != nil {
		return errors.New(errors.ErrCodeInvalidInput, "project path and system are mutually exclusive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// System is the loaded project.
	System *project.System

	// SystemHash is the content hash keying the report cache.
	SystemHash string

	// Circuits are the calculated (and possibly re-gauged) circuits.
	Circuits []*circuit.Circuit

	// ValidGauges lists the compliant wire gauges per circuit ID when
	// optimization ran. An empty list means no compliant design exists.
	ValidGauges map[string][]int

	// Battery holds the sizing breakdown and ranked configurations when
	// battery sizing ran.
	Battery        *battery.Breakdown
	BatteryConfigs []battery.Configuration

	// Coverage maps room ID to its detector coverage analysis.
	Coverage map[string]coverage.Analysis

	// Violations is the full sorted violation set.
	Violations []rules.Violation

	// Report is the aggregated compliance report.
	Report report.Report

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DeviceCount  int
	CircuitCount int
	LoadTime     time.Duration
	CalcTime     time.Duration
	ReportTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ReportHit bool // Whether the report came from cache
}

// systemHash derives the content hash of a loaded system plus everything
// that shapes its report. Structural equality of projects yields equal
// hashes regardless of source file formatting.
func systemHash(sys *project.System) (string, error) {
	data, err := json.Marshal(sys)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "failed to hash system")
	}
	return cache.Hash(data), nil
}
