package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/firegrid/firegrid/pkg/cache"
	"github.com/firegrid/firegrid/pkg/catalog"
	"github.com/firegrid/firegrid/pkg/observability"
	"github.com/firegrid/firegrid/pkg/report"
	"github.com/firegrid/firegrid/pkg/rules"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// applyLogger injects the runner's logger into options that don't carry
// their own.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Execute runs the complete load → calculate → report pipeline with
// report caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	source := opts.ProjectPath
	if source == "" {
		source = "inline"
	}
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)
	sys, cat, err := Load(opts)
	result.Stats.LoadTime = time.Since(loadStart)
	deviceCount := 0
	if sys != nil {
		deviceCount = countDevices(sys)
	}
	observability.Pipeline().OnLoadComplete(ctx, source, deviceCount, result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	result.System = sys
	result.Stats.DeviceCount = deviceCount

	r.Logger.Info("loaded project",
		"name", sys.Name,
		"panels", len(sys.Panels),
		"devices", result.Stats.DeviceCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Calculate
	calcStart := time.Now()
	observability.Pipeline().OnCalculateStart(ctx, len(sys.Panels))
	err = Calculate(sys, cat, opts, result)
	result.Stats.CalcTime = time.Since(calcStart)
	result.Stats.CircuitCount = len(result.Circuits)
	observability.Pipeline().OnCalculateComplete(ctx, result.Stats.CircuitCount, result.Stats.CalcTime, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("calculated circuits",
		"circuits", result.Stats.CircuitCount,
		"optimized", opts.Optimize,
		"duration", result.Stats.CalcTime)

	// Stage 3: Report
	reportStart := time.Now()
	observability.Pipeline().OnReportStart(ctx)
	rep, hit, err := r.generateReport(ctx, cat, opts, result)
	result.Stats.ReportTime = time.Since(reportStart)
	observability.Pipeline().OnReportComplete(ctx, rep.TotalFindings(), result.Stats.ReportTime, err)
	if err != nil {
		return nil, err
	}
	result.Report = rep
	result.CacheInfo.ReportHit = hit

	r.Logger.Info("generated report",
		"status", rep.OverallStatus,
		"compliance", rep.CompliancePercent,
		"findings", rep.TotalFindings(),
		"cached", hit,
		"duration", result.Stats.ReportTime)

	return result, nil
}

// generateReport evaluates the rule engine and aggregates the report,
// consulting the cache first. The cache key covers the system content, the
// catalog, and every option that changes report content.
func (r *Runner) generateReport(ctx context.Context, cat *catalog.Catalog, opts Options, result *Result) (report.Report, bool, error) {
	hash, err := systemHash(result.System)
	if err != nil {
		return report.Report{}, false, err
	}
	result.SystemHash = hash

	key := r.Keyer.ReportKey(hash, cache.ReportKeyOpts{
		CatalogHash: catalogHash(cat),
		Optimize:    opts.Optimize,
		Battery:     opts.Battery != nil,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached report.Report
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "report")
				result.Violations = collectViolations(cached)
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "report")
	}

	sys, err := result.System.Review(cat, result.Circuits)
	if err != nil {
		return report.Report{}, false, err
	}
	result.Violations = rules.NewEngine(cat).Evaluate(sys)
	rep := report.Generate(result.Violations)

	if data, err := json.Marshal(rep); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLReport); err == nil {
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		}
	}
	return rep, false, nil
}

// catalogHash derives a content hash over the catalog's sorted entries.
func catalogHash(cat *catalog.Catalog) string {
	data, _ := json.Marshal(struct {
		Devices []catalog.DeviceSpecification `json:"devices"`
		Wires   []catalog.WireSpecification   `json:"wires"`
		Rules   []catalog.NFPARule            `json:"rules"`
	}{cat.Devices(), cat.Wires(), cat.Rules()})
	return cache.Hash(data)
}

// collectViolations flattens a report's severity partitions back into one
// sorted violation list, for callers that consumed a cached report.
func collectViolations(rep report.Report) []rules.Violation {
	out := make([]rules.Violation, 0, rep.TotalFindings())
	out = append(out, rep.Critical...)
	out = append(out, rep.Violations...)
	out = append(out, rep.Warnings...)
	return out
}
