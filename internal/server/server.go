package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"gsmonitor/internal/models"
	"gsmonitor/internal/settings"
)

const defaultHistoryLimit = 100

// StatusSource exposes the running monitor's state to the HTTP surface.
type StatusSource interface {
	Latest() (models.CycleSnapshot, bool)
	HistoryN(limit int) []models.CycleSnapshot
	Settings() settings.Settings
}

// Server wraps the read-only status API for a running monitor.
type Server struct {
	httpServer   *http.Server
	source       StatusSource
	historyLimit int
}

// New creates a configured status server.
func New(addr string, source StatusSource) *Server {
	mux := http.NewServeMux()
	s := &Server{
		httpServer:   &http.Server{Addr: addr, Handler: mux},
		source:       source,
		historyLimit: defaultHistoryLimit,
	}
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/ws", s.handleStatusWS)
	return s
}

// Run blocks and serves HTTP traffic.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	snapshot, ok := s.source.Latest()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"probe": nil})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, s.historyLimit)
	history := s.source.HistoryN(limit)
	if history == nil {
		history = []models.CycleSnapshot{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.source.Settings())
}

func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	if value > fallback {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

type statusPayload struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Endpoint    string                 `json:"endpoint"`
	Latest      *models.CycleSnapshot  `json:"latest,omitempty"`
	History     []models.CycleSnapshot `json:"history,omitempty"`
}

func (s *Server) buildStatusPayload() statusPayload {
	payload := statusPayload{
		GeneratedAt: time.Now().UTC(),
		Endpoint:    s.source.Settings().GSocketEndpoint,
		History:     s.source.HistoryN(s.historyLimit),
	}
	if snapshot, ok := s.source.Latest(); ok {
		payload.Latest = &snapshot
	}
	return payload
}
