// Package server exposes the dashboard HTTP API: analysis runs, the
// session ticket, a raw sheet preview, and a websocket event stream.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-hammer/internal/config"
	"github.com/yourusername/prop-hammer/internal/metrics"
	"github.com/yourusername/prop-hammer/internal/service"
	"github.com/yourusername/prop-hammer/internal/sheet"
)

// Server is the dashboard API server.
type Server struct {
	cfg      *config.Config
	logger   *logrus.Logger
	analyzer *service.Analyzer
	tickets  *service.TicketService
	source   *sheet.CachedSource
	hub      *Hub
	http     *http.Server
}

// New creates a dashboard server wired to the analysis and ticket services.
func New(cfg *config.Config, logger *logrus.Logger, analyzer *service.Analyzer, tickets *service.TicketService, source *sheet.CachedSource, hub *Hub) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		analyzer: analyzer,
		tickets:  tickets,
		source:   source,
		hub:      hub,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/analysis", s.handleAnalysis)
	mux.HandleFunc("/api/v1/tickets", s.handleTickets)
	mux.HandleFunc("/api/v1/preview", s.handlePreview)
	mux.HandleFunc("/api/v1/refresh", s.handleRefresh)
	mux.HandleFunc("/ws", hub.HandleWS)
	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Hub returns the websocket hub for broadcast by other components.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start runs the server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	s.logger.WithField("addr", s.http.Addr).Info("Dashboard server starting")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and disconnects websocket clients.
func (s *Server) Shutdown() error {
	s.logger.Info("Dashboard server shutting down")
	s.hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// handleAnalysis runs a scan over the current sheet snapshot. The matchup
// query selects a configured multiplier; an explicit multiplier query
// overrides it.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var (
		result *service.AnalysisResult
		err    error
	)

	if raw := r.URL.Query().Get("multiplier"); raw != "" {
		multiplier, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "multiplier must be a number")
			return
		}
		result, err = s.analyzer.AnalyzeWithMultiplier(r.Context(), multiplier)
	} else {
		result, err = s.analyzer.Analyze(r.Context(), r.URL.Query().Get("matchup"))
	}

	if err != nil {
		s.logger.WithError(err).Error("Analysis request failed")
		writeError(w, http.StatusBadGateway, "analysis failed")
		return
	}

	s.hub.Broadcast("analysis", result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTickets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ticket, err := s.tickets.Ticket(r.Context())
		if err != nil {
			s.logger.WithError(err).Error("Failed to load ticket")
			writeError(w, http.StatusInternalServerError, "failed to load ticket")
			return
		}
		writeJSON(w, http.StatusOK, ticket)

	case http.MethodPost:
		var req service.StageLegRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		leg, err := s.tickets.Stage(r.Context(), req)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		s.hub.Broadcast("leg_staged", leg)
		writeJSON(w, http.StatusCreated, leg)

	case http.MethodDelete:
		n, err := s.tickets.Clear(r.Context())
		if err != nil {
			s.logger.WithError(err).Error("Failed to clear ticket")
			writeError(w, http.StatusInternalServerError, "failed to clear ticket")
			return
		}

		s.hub.Broadcast("ticket_cleared", map[string]int{"removed": n})
		writeJSON(w, http.StatusOK, map[string]int{"removed": n})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handlePreview returns the head of the last raw snapshot. It exists
// because the scanner skips malformed rows silently; when a sheet edit
// breaks the layout, the preview is how an operator sees what the scanner
// actually received.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	grid, fetchedAt := s.source.LastSnapshot()
	if grid == nil {
		writeError(w, http.StatusNotFound, "no snapshot fetched yet")
		return
	}

	rows := s.cfg.Sheet.PreviewRows
	if raw := r.URL.Query().Get("rows"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			rows = n
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"fetched_at": fetchedAt.UTC(),
		"rows":       service.Preview(grid, rows),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	grid, err := s.source.Refresh(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Manual sheet refresh failed")
		writeError(w, http.StatusBadGateway, "sheet refresh failed")
		return
	}

	s.hub.Broadcast("sheet_refreshed", map[string]int{"rows": len(grid)})
	writeJSON(w, http.StatusOK, map[string]int{"rows": len(grid)})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}
