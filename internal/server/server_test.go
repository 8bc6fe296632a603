package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gsmonitor/internal/models"
	"gsmonitor/internal/settings"
)

type fakeSource struct {
	latest  *models.CycleSnapshot
	history []models.CycleSnapshot
	cfg     settings.Settings
}

func (f *fakeSource) Latest() (models.CycleSnapshot, bool) {
	if f.latest == nil {
		return models.CycleSnapshot{}, false
	}
	return *f.latest, true
}

func (f *fakeSource) HistoryN(limit int) []models.CycleSnapshot {
	if limit > 0 && len(f.history) > limit {
		return f.history[len(f.history)-limit:]
	}
	return f.history
}

func (f *fakeSource) Settings() settings.Settings { return f.cfg }

func TestHandleStatusBeforeFirstCycle(t *testing.T) {
	s := New("127.0.0.1:0", &fakeSource{cfg: settings.Default()})

	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if probe, ok := body["probe"]; !ok || probe != nil {
		t.Errorf("expected null probe placeholder, got %v", body)
	}
}

func TestHandleStatusWithSnapshot(t *testing.T) {
	code := http.StatusOK
	snapshot := models.CycleSnapshot{
		Probe:          models.ProbeResult{Endpoint: "localhost:8080", OK: true, StatusCode: &code},
		MaintenanceRan: true,
	}
	s := New("127.0.0.1:0", &fakeSource{latest: &snapshot, cfg: settings.Default()})

	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	var got models.CycleSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Probe.OK || got.Probe.Endpoint != "localhost:8080" {
		t.Errorf("unexpected snapshot: %+v", got)
	}
}

func TestHandleSettings(t *testing.T) {
	s := New("127.0.0.1:0", &fakeSource{cfg: settings.Default()})

	rec := httptest.NewRecorder()
	s.handleSettings(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))

	var got settings.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != settings.Default() {
		t.Errorf("settings echo mismatch: %+v", got)
	}
}

func TestHandleHistoryLimit(t *testing.T) {
	history := make([]models.CycleSnapshot, 5)
	s := New("127.0.0.1:0", &fakeSource{history: history, cfg: settings.Default()})

	rec := httptest.NewRecorder()
	s.handleHistory(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=2", nil))

	var got []models.CycleSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("history length %d, want 2", len(got))
	}
}
