// Package http exposes the briefing API plus health, readiness, and
// metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sykeriin/aerobrief/internal/briefing"
	"github.com/sykeriin/aerobrief/internal/domain"
)

// BriefingService assembles airport and route briefings.
type BriefingService interface {
	Airport(ctx context.Context, code string) (briefing.AirportBriefing, error)
	Route(ctx context.Context, codes []string) (briefing.RouteBriefing, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the briefing API over HTTP.
type Server struct {
	httpServer *http.Server
	service    BriefingService
	maxRoute   int
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the briefing API, /healthz,
// /readyz, and /metrics routes. maxRouteAirports caps the number of
// airports accepted per route request.
func NewServer(addr string, service BriefingService, ready ReadinessChecker, maxRouteAirports int, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service:  service,
		maxRoute: maxRouteAirports,
		logger:   logger,
	}

	mux.HandleFunc("GET /api/weather/{icao}", s.handleAirport)
	mux.HandleFunc("GET /api/route", s.handleRoute)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// metarBlock nests the raw observation with its decode.
type metarBlock struct {
	RawText string      `json:"raw_text"`
	Source  string      `json:"source,omitempty"`
	Parsed  parsedBlock `json:"parsed"`
}

type parsedBlock struct {
	Severity domain.Severity    `json:"severity"`
	Tokens   domain.MetarTokens `json:"tokens"`
}

type weatherBlock struct {
	Metar metarBlock `json:"metar"`
}

type airportResponse struct {
	ICAO           string                     `json:"icao"`
	Airport        domain.AirportRef          `json:"airport"`
	Weather        weatherBlock               `json:"weather"`
	EnglishSummary string                     `json:"english_summary"`
	SummarySource  string                     `json:"summary_source"`
	Briefing       briefing.BriefingText      `json:"ai_briefing"`
	Decision       domain.OperationalDecision `json:"decision"`
	Timestamp      time.Time                  `json:"timestamp"`
}

type routeResponse struct {
	Route           routeBlock               `json:"route"`
	Analysis        analysisBlock            `json:"analysis"`
	Legs            []briefing.LegSummary    `json:"legs"`
	Timeline        []briefing.TimelinePoint `json:"timeline"`
	Overall         domain.Severity          `json:"overall_conditions"`
	Recommendations []string                 `json:"recommendations"`
	Alerts          []domain.RouteAlert      `json:"alerts,omitempty"`
	Timestamp       time.Time                `json:"timestamp"`
}

type routeBlock struct {
	Airports []string `json:"airports"`
}

type analysisBlock struct {
	Airports []airportResponse `json:"airports"`
}

func toAirportResponse(b briefing.AirportBriefing) airportResponse {
	return airportResponse{
		ICAO:    b.ICAO,
		Airport: b.Airport,
		Weather: weatherBlock{Metar: metarBlock{
			RawText: b.RawText,
			Source:  b.Source,
			Parsed:  parsedBlock{Severity: b.Severity, Tokens: b.Tokens},
		}},
		EnglishSummary: b.Summary,
		SummarySource:  b.SummarySource,
		Briefing:       b.Text,
		Decision:       b.Decision,
		Timestamp:      b.GeneratedAt,
	}
}

func (s *Server) handleAirport(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.PathValue("icao"))
	if code == "" {
		writeError(w, http.StatusBadRequest, "airport code is required")
		return
	}

	b, err := s.service.Airport(r.Context(), code)
	if err != nil {
		s.logger.Error("airport briefing failed", "code", code, "error", err)
		writeError(w, http.StatusInternalServerError, "briefing unavailable")
		return
	}

	writeJSON(w, http.StatusOK, toAirportResponse(b))
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	codes := splitCodes(r.URL.Query().Get("airports"))
	if len(codes) < 2 {
		writeError(w, http.StatusBadRequest, "need at least 2 airports")
		return
	}
	if len(codes) > s.maxRoute {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("route limited to %d airports", s.maxRoute))
		return
	}

	rb, err := s.service.Route(r.Context(), codes)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Error("route briefing failed", "codes", codes, "error", err)
		writeError(w, http.StatusInternalServerError, "briefing unavailable")
		return
	}

	airports := make([]airportResponse, len(rb.Airports))
	for i, b := range rb.Airports {
		airports[i] = toAirportResponse(b)
	}

	writeJSON(w, http.StatusOK, routeResponse{
		Route:           routeBlock{Airports: rb.Codes},
		Analysis:        analysisBlock{Airports: airports},
		Legs:            rb.Legs,
		Timeline:        rb.Timeline,
		Overall:         rb.Overall,
		Recommendations: rb.Recommendations,
		Alerts:          rb.Alerts,
		Timestamp:       rb.GeneratedAt,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func splitCodes(param string) []string {
	var codes []string
	for _, code := range strings.Split(param, ",") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
