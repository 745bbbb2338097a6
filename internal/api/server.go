// Package api provides the read-only HTTP observer for a running
// session: current standings, round results, legislator detail, and
// the event feed.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/talgya/capitol-sim/internal/engine"
)

// Server serves session state over HTTP. All endpoints are GET and
// read-only; the session's own locking makes reads safe while rounds
// run.
type Server struct {
	Sess *engine.Session
	Port int
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/legislators", s.handleLegislators)
	mux.HandleFunc("GET /api/v1/legislator/{name}", s.handleLegislatorDetail)
	mux.HandleFunc("GET /api/v1/rounds", s.handleRounds)
	mux.HandleFunc("GET /api/v1/events", s.handleEvents)
	mux.HandleFunc("GET /api/v1/stats", s.handleStats)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP observer starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.Sess.StatsSnapshot()
	status := map[string]any{
		"name":           "Capitol",
		"round":          s.Sess.CurrentRound(),
		"bills_passed":   stats.BillsPassed,
		"bills_failed":   stats.BillsFailed,
		"deals":          stats.Deals,
		"betrayals":      stats.Betrayals,
		"avg_approval":   stats.AvgApproval,
		"avg_reputation": stats.AvgReputation,
	}
	writeJSON(w, status)
}

func (s *Server) handleLegislators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sess.LegislatorSummaries())
}

func (s *Server) handleLegislatorDetail(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(r.PathValue("name"))
	if err != nil {
		http.Error(w, "bad name", http.StatusBadRequest)
		return
	}
	l, ok := s.Sess.LegislatorView(name)
	if !ok {
		http.Error(w, "legislator not found", http.StatusNotFound)
		return
	}
	writeJSON(w, l)
}

func (s *Server) handleRounds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sess.ResultsSnapshot())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	category := r.URL.Query().Get("category")

	events := s.Sess.RecentEvents(limit)
	if category != "" {
		filtered := events[:0]
		for _, e := range events {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	writeJSON(w, events)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sess.StatsSnapshot())
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
