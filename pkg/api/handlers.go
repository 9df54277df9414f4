package api

import (
	"encoding/json"
	"net/http"

	"github.com/firegrid/firegrid/pkg/battery"
	"github.com/firegrid/firegrid/pkg/circuit"
	"github.com/firegrid/firegrid/pkg/coverage"
	"github.com/firegrid/firegrid/pkg/errors"
	"github.com/firegrid/firegrid/pkg/pipeline"
	"github.com/firegrid/firegrid/pkg/report"
	"github.com/firegrid/firegrid/pkg/rules"
)

// circuitSummary is the wire form of a calculated circuit.
type circuitSummary struct {
	ID                string  `json:"id"`
	Type              string  `json:"type"`
	GaugeAWG          int     `json:"gauge_awg"`
	TotalLengthFt     float64 `json:"total_length_ft"`
	StandbyCurrentA   float64 `json:"standby_current_a"`
	AlarmCurrentA     float64 `json:"alarm_current_a"`
	MaxVoltageDrop    float64 `json:"max_voltage_drop"`
	DropPercent       float64 `json:"drop_percent"`
	EOLVoltagePercent float64 `json:"eol_voltage_percent"`
	Valid             bool    `json:"valid"`
}

func summarize(c *circuit.Circuit) circuitSummary {
	return circuitSummary{
		ID:                c.ID,
		Type:              string(c.Type),
		GaugeAWG:          c.Wire.GaugeAWG,
		TotalLengthFt:     c.TotalLength,
		StandbyCurrentA:   c.StandbyCurrent,
		AlarmCurrentA:     c.AlarmCurrent,
		MaxVoltageDrop:    c.MaxVoltageDrop,
		DropPercent:       c.DropPercent,
		EOLVoltagePercent: c.EOLVoltagePercent(),
		Valid:             c.Valid,
	}
}

// reportResponse is the full evaluation result returned by POST /v1/report.
type reportResponse struct {
	SystemHash     string                       `json:"system_hash"`
	Report         report.Report                `json:"report"`
	Circuits       []circuitSummary             `json:"circuits"`
	ValidGauges    map[string][]int             `json:"valid_gauges,omitempty"`
	Battery        *battery.Breakdown           `json:"battery,omitempty"`
	BatteryConfigs []battery.Configuration      `json:"battery_configs,omitempty"`
	Coverage       map[string]coverage.Analysis `json:"coverage,omitempty"`
	CacheHit       bool                         `json:"cache_hit"`
}

func buildReportResponse(result *pipeline.Result) reportResponse {
	resp := reportResponse{
		SystemHash:     result.SystemHash,
		Report:         result.Report,
		ValidGauges:    result.ValidGauges,
		Battery:        result.Battery,
		BatteryConfigs: result.BatteryConfigs,
		Coverage:       result.Coverage,
		CacheHit:       result.CacheInfo.ReportHit,
	}
	for _, c := range result.Circuits {
		resp.Circuits = append(resp.Circuits, summarize(c))
	}
	return resp
}

// handleReport runs the full pipeline for an inline system.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed request body"))
		return
	}
	// The API never reads server-side files on behalf of clients.
	if opts.ProjectPath != "" || opts.CatalogPath != "" {
		writeError(w, errors.New(errors.ErrCodeUnsupported, "file paths are not accepted over the API; inline the system"))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildReportResponse(result))
}

// validateResponse carries just the compliance verdict for POST /v1/validate.
type validateResponse struct {
	CompliancePercent float64           `json:"compliance_percentage"`
	OverallStatus     string            `json:"overall_status"`
	Violations        []rules.Violation `json:"violations"`
	Circuits          []circuitSummary  `json:"circuits"`
}

// handleValidate runs the pipeline and returns only the verdict.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed request body"))
		return
	}
	if opts.ProjectPath != "" || opts.CatalogPath != "" {
		writeError(w, errors.New(errors.ErrCodeUnsupported, "file paths are not accepted over the API; inline the system"))
		return
	}
	opts.Battery = nil

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := validateResponse{
		CompliancePercent: result.Report.CompliancePercent,
		OverallStatus:     result.Report.OverallStatus,
		Violations:        result.Violations,
	}
	for _, c := range result.Circuits {
		resp.Circuits = append(resp.Circuits, summarize(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// batteryResponse pairs a sizing breakdown with its recommendations.
type batteryResponse struct {
	Breakdown      battery.Breakdown       `json:"breakdown"`
	Configurations []battery.Configuration `json:"configurations"`
}

// handleBattery sizes a battery bank for an explicit load profile, without
// a project.
func (s *Server) handleBattery(w http.ResponseWriter, r *http.Request) {
	var in battery.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed request body"))
		return
	}

	breakdown, err := battery.Calculate(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batteryResponse{
		Breakdown:      breakdown,
		Configurations: battery.Recommend(breakdown.CapacityAh, breakdown.Input.Voltage, breakdown.Input.Chemistry),
	})
}
