// Package api provides the HTTP presentation shell for the simulation.
// GET endpoints are public (read-only observation). POST endpoints require a
// bearer token and are the only way turns advance and policies apply.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/harlandq/geosim/internal/country"
	"github.com/harlandq/geosim/internal/engine"
	"github.com/harlandq/geosim/internal/persistence"
)

// Server serves the world state over HTTP and accepts player commands.
// World access is serialized with a mutex; the engine itself is
// single-threaded and turn-synchronous.
type Server struct {
	World    *engine.World
	Journal  *persistence.Journal
	Player   string // Player-controlled country; AI drives the rest
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	mu sync.Mutex
}

// Handler builds the route table. Split from Start so tests can drive it
// with httptest.
func (s *Server) Handler() http.Handler {
	turnLimiter := NewRateLimiter(600, time.Hour)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/countries", s.handleCountries)
	mux.HandleFunc("/api/v1/country/", s.handleCountryDetail)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/stats", s.handleStats)
	mux.HandleFunc("/api/v1/stats/history", s.handleStatsHistory)

	// Command endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/policy", s.adminOnly(s.handlePolicy))
	mux.HandleFunc("/api/v1/turn", s.adminOnly(RateLimitMiddleware(turnLimiter, s.handleTurn)))

	return mux
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	if s.AdminKey == "" {
		return false
	}
	auth := r.Header.Get("Authorization")
	return strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]any{
		"turn":      s.World.Turn,
		"countries": len(s.World.Countries),
		"player":    s.Player,
	}
	if s.Journal != nil {
		status["run_id"] = s.Journal.RunID()
	}
	writeJSON(w, status)
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.World.Snapshot()
	s.mu.Unlock()

	writeJSON(w, snap)
}

func (s *Server) handleCountryDetail(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/v1/country/")

	s.mu.Lock()
	snap, ok := s.World.SnapshotCountry(name)
	s.mu.Unlock()

	if !ok {
		http.Error(w, "country not found", http.StatusNotFound)
		return
	}
	writeJSON(w, snap)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	if s.Journal != nil {
		events, err := s.Journal.RecentEvents(limit)
		if err != nil {
			http.Error(w, "journal read failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, events)
		return
	}

	// No journal; serve from the in-memory buffer.
	s.mu.Lock()
	events := s.World.Events
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	out := make([]engine.Event, len(events))
	copy(out, events)
	s.mu.Unlock()

	writeJSON(w, out)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.World.Stats
	s.mu.Unlock()

	writeJSON(w, stats)
}

func (s *Server) handleStatsHistory(w http.ResponseWriter, r *http.Request) {
	if s.Journal == nil {
		http.Error(w, "no journal configured", http.StatusNotFound)
		return
	}
	history, err := s.Journal.StatsHistory()
	if err != nil {
		http.Error(w, "journal read failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, history)
}

// policyRequest is the POST /api/v1/policy body.
type policyRequest struct {
	Country string `json:"country"`
	Policy  string `json:"policy"`
	Target  string `json:"target,omitempty"`
}

func (s *Server) handlePolicy(w http.ResponseWriter, r *http.Request) {
	var req policyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	kind, ok := country.PolicyKindFromString(req.Policy)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown policy %q", req.Policy), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.World.ApplyPolicy(req.Country, country.Policy{Kind: kind, Target: req.Target})
	s.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{"ok": true, "country": req.Country, "policy": req.Policy})
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.World.AdvanceTurn(s.Player)
	turn := s.World.Turn
	stats := s.World.Stats
	events := s.World.Drain()
	s.mu.Unlock()

	if s.Journal != nil {
		if err := s.Journal.AppendEvents(events); err != nil {
			slog.Error("journal events failed", "error", err)
		}
		if err := s.Journal.RecordTurn(turn, stats); err != nil {
			slog.Error("journal stats failed", "error", err)
		}
	}

	writeJSON(w, map[string]any{"ok": true, "turn": turn, "stats": stats})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
