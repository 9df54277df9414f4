package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/firegrid/firegrid/pkg/pipeline"
	"github.com/firegrid/firegrid/pkg/project"
)

func testServer() *Server {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return NewServer(pipeline.NewRunner(nil, nil, logger), logger)
}

func inlineSystem() *project.System {
	return &project.System{
		Name: "api-test",
		Panels: []project.Panel{{
			ID: "FACP-1",
			Circuits: []project.CircuitSpec{{
				ID:   "NAC-1",
				Type: "NAC",
				Devices: []project.DevicePlacement{
					{ID: "HS1", Model: "P2R", WireDistance: 100, Room: "lobby", MountingHeight: 90},
				},
			}},
		}},
		Rooms: []project.Room{{ID: "lobby", Area: 400}},
	}
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := testServer().Router()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestReportEndpoint(t *testing.T) {
	rec := postJSON(t, testServer().Router(), "/v1/report", pipeline.Options{System: inlineSystem()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp struct {
		SystemHash string `json:"system_hash"`
		Report     struct {
			OverallStatus string `json:"overall_status"`
		} `json:"report"`
		Circuits []struct {
			ID    string `json:"id"`
			Valid bool   `json:"valid"`
		} `json:"circuits"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SystemHash == "" {
		t.Error("missing system_hash")
	}
	if resp.Report.OverallStatus == "" {
		t.Error("missing overall_status")
	}
	if len(resp.Circuits) != 1 || resp.Circuits[0].ID != "NAC-1" {
		t.Errorf("circuits = %+v", resp.Circuits)
	}
}

func TestReportEndpointRejectsPaths(t *testing.T) {
	rec := postJSON(t, testServer().Router(), "/v1/report", pipeline.Options{ProjectPath: "/etc/passwd"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "UNSUPPORTED" {
		t.Errorf("error code = %q, want UNSUPPORTED", body.Error.Code)
	}
}

func TestValidateEndpointSnakeCaseBody(t *testing.T) {
	// Hand-written clients send the same snake_case keys project files use.
	raw := `{"system": {
		"panels": [{
			"id": "FACP-1",
			"circuits": [{
				"id": "NAC-1",
				"type": "NAC",
				"devices": [{"id": "HS1", "model": "P2R", "wire_distance": 100}]
			}]
		}]
	}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader([]byte(raw)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	testServer().Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp struct {
		Circuits []struct {
			TotalLengthFt float64 `json:"total_length_ft"`
		} `json:"circuits"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Circuits) != 1 || resp.Circuits[0].TotalLengthFt != 100 {
		t.Errorf("circuits = %+v, want one 100 ft circuit", resp.Circuits)
	}
}

func TestReportEndpointMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/report", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	testServer().Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReportEndpointUnknownModel(t *testing.T) {
	sys := inlineSystem()
	sys.Panels[0].Circuits[0].Devices[0].Model = "NO-SUCH"
	rec := postJSON(t, testServer().Router(), "/v1/report", pipeline.Options{System: sys})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body)
	}
}

func TestValidateEndpoint(t *testing.T) {
	rec := postJSON(t, testServer().Router(), "/v1/validate", pipeline.Options{System: inlineSystem()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp struct {
		OverallStatus string `json:"overall_status"`
		Violations    []struct {
			RuleID string `json:"rule_id"`
		} `json:"violations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// The inline system has no detection or manual devices, so it cannot
	// be compliant.
	if resp.OverallStatus != "NON-COMPLIANT" {
		t.Errorf("overall_status = %q, want NON-COMPLIANT", resp.OverallStatus)
	}
	if len(resp.Violations) == 0 {
		t.Error("expected violations for a notification-only system")
	}
}

func TestBatteryEndpoint(t *testing.T) {
	body := map[string]any{
		"standby_current": 0.15,
		"alarm_current":   2.1,
		"standby_hours":   24,
		"alarm_hours":     0.5,
		"voltage":         24,
		"chemistry":       "lead_acid",
		"temperature_f":   86,
		"safety_factor":   1.25,
	}
	rec := postJSON(t, testServer().Router(), "/v1/battery", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp struct {
		Breakdown struct {
			CapacityAh float64 `json:"capacity_ah"`
		} `json:"breakdown"`
		Configurations []struct {
			TotalAh float64 `json:"total_ah"`
		} `json:"configurations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Breakdown.CapacityAh < 5.3 || resp.Breakdown.CapacityAh > 5.8 {
		t.Errorf("capacity_ah = %v, want ~5.5", resp.Breakdown.CapacityAh)
	}
	if len(resp.Configurations) == 0 {
		t.Fatal("no configurations")
	}
	for _, cfg := range resp.Configurations {
		if cfg.TotalAh < resp.Breakdown.CapacityAh {
			t.Errorf("undersized configuration: %v < %v", cfg.TotalAh, resp.Breakdown.CapacityAh)
		}
	}
}

func TestBatteryEndpointBadInput(t *testing.T) {
	rec := postJSON(t, testServer().Router(), "/v1/battery", map[string]any{
		"alarm_current": -1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
