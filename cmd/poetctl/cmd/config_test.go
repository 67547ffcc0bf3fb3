package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"

	"github.com/heartbeats/poet-go/pkg/poet/telemetry"
)

func TestLoadTablesFromTextFiles(t *testing.T) {
	dir := t.TempDir()
	controlPath := filepath.Join(dir, "control_config")
	cpuPath := filepath.Join(dir, "cpu_config")

	if err := os.WriteFile(controlPath, []byte("0 1.0 1.0\n1 2.0 2.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cpuPath, []byte("0 600000 4\n1 1200000 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := runConfig{ControlFile: controlPath, CPUFile: cpuPath}
	tables, err := cfg.loadTables()
	if err != nil {
		t.Fatalf("loadTables: %v", err)
	}
	if len(tables.Control) != 2 || len(tables.CPU) != 2 {
		t.Fatalf("tables = %d control, %d cpu, want 2 each", len(tables.Control), len(tables.CPU))
	}
}

func TestStatusEndpoint(t *testing.T) {
	status := newStatusTracker(100)
	status.record(7, 2.5, 9.0)

	srv := newStatusServer("127.0.0.1:0", telemetry.NewMetrics(), status)
	r := mux.NewRouter()
	srv.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Goal != 100 || resp.LastTag != 7 || resp.LastRate != 2.5 || resp.LastPower != 9.0 || resp.Windows != 1 {
		t.Fatalf("unexpected state response: %+v", resp)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
}
