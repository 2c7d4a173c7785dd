// Package briefing assembles operational weather briefings for airports
// and routes from raw METARs, airport reference data, and the decision
// engine. Collaborators are injected as interfaces so transports and
// providers stay swappable.
package briefing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sykeriin/aerobrief/internal/domain"
	"github.com/sykeriin/aerobrief/internal/observability"
)

// WeatherSource supplies the raw METAR for a station code.
type WeatherSource interface {
	METAR(ctx context.Context, icao string) (domain.Report, error)
}

// AirportLookup resolves airport codes to reference records.
type AirportLookup interface {
	Lookup(ctx context.Context, code string) (domain.AirportRef, error)
}

// Narrator produces a plain-language narrative for decoded conditions.
// Its output is never surfaced unverified; see [domain.VerifyNarrative].
type Narrator interface {
	Narrate(ctx context.Context, airport domain.AirportRef, tokens domain.MetarTokens, severity domain.Severity) (string, error)
}

// AlertPublisher delivers severe-weather route alerts to downstream
// consumers.
type AlertPublisher interface {
	PublishAlerts(ctx context.Context, alerts []domain.RouteAlert) error
}

// AirportBriefing is the full briefing for a single airport.
type AirportBriefing struct {
	ICAO          string                     `json:"icao"`
	Airport       domain.AirportRef          `json:"airport"`
	RawText       string                     `json:"raw_text"`
	Source        string                     `json:"source,omitempty"`
	Severity      domain.Severity            `json:"severity"`
	Tokens        domain.MetarTokens         `json:"tokens"`
	Summary       string                     `json:"english_summary"`
	SummarySource string                     `json:"summary_source"`
	Decision      domain.OperationalDecision `json:"decision"`
	Text          BriefingText               `json:"briefing"`
	GeneratedAt   time.Time                  `json:"timestamp"`
}

// BriefingText is the rule-based briefing prose keyed off severity.
type BriefingText struct {
	ExecutiveSummary  string   `json:"executive_summary"`
	OperationalImpact string   `json:"operational_impact"`
	Recommendations   []string `json:"recommendations"`
}

// LegSummary is one leg of a route with its great-circle distance.
// DistanceNM is nil when either endpoint has no coordinates.
type LegSummary struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	DistanceNM *float64 `json:"distance_nm"`
}

// TimelinePoint positions one route airport for map rendering.
type TimelinePoint struct {
	ICAO      string          `json:"icao"`
	Name      string          `json:"name"`
	Latitude  *float64        `json:"latitude"`
	Longitude *float64        `json:"longitude"`
	Severity  domain.Severity `json:"severity"`
}

// RouteBriefing is the full analysis of a multi-airport route.
type RouteBriefing struct {
	Codes           []string            `json:"codes"`
	Airports        []AirportBriefing   `json:"airports"`
	Legs            []LegSummary        `json:"legs"`
	Timeline        []TimelinePoint     `json:"timeline"`
	Overall         domain.Severity     `json:"overall_conditions"`
	Recommendations []string            `json:"recommendations"`
	Alerts          []domain.RouteAlert `json:"alerts,omitempty"`
	GeneratedAt     time.Time           `json:"timestamp"`
}

// Service orchestrates briefing assembly.
type Service struct {
	weather   WeatherSource
	airports  AirportLookup
	narrator  Narrator       // nil when the narrator feature is disabled
	publisher AlertPublisher // nil when alert publishing is disabled
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	ready     atomic.Bool
}

// New creates a briefing service. narrator and publisher may be nil; pass
// a fake clock in tests for deterministic timestamps, or nil for real time.
func New(weather WeatherSource, airports AirportLookup, narrator Narrator, publisher AlertPublisher,
	logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		weather:   weather,
		airports:  airports,
		narrator:  narrator,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
	}
}

// CheckReadiness returns nil once the service has assembled at least one
// briefing, or an error describing why it is not yet ready.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no briefing assembled yet")
	}
	return nil
}

// Airport assembles the briefing for a single airport. Upstream failures
// degrade (fallback airport record, empty METAR with UNKNOWN severity)
// rather than failing the request; the only error is a cancelled context.
func (s *Service) Airport(ctx context.Context, code string) (AirportBriefing, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		s.metrics.BriefingRequests.WithLabelValues("airport", "error").Inc()
		return AirportBriefing{}, err
	}

	b := s.assemble(ctx, code)
	b.Decision = domain.Recommend(b.Airport, b.RawText, b.Severity, nil)

	s.metrics.BriefingRequests.WithLabelValues("airport", "success").Inc()
	s.metrics.BriefingDuration.WithLabelValues("airport").Observe(time.Since(start).Seconds())
	s.ready.Store(true)

	s.logger.Info("airport briefing assembled",
		"icao", b.ICAO, "severity", b.Severity, "weather_source", b.Source)
	return b, nil
}

// Route assembles briefings for every airport on a route, fetched
// concurrently, then derives legs, the overall conditions, route
// recommendations, and severe-weather alerts.
func (s *Service) Route(ctx context.Context, codes []string) (RouteBriefing, error) {
	start := time.Now()

	codes = normalizeCodes(codes)
	if len(codes) == 0 {
		s.metrics.BriefingRequests.WithLabelValues("route", "error").Inc()
		return RouteBriefing{}, errors.New("route requires at least one airport code")
	}
	if err := ctx.Err(); err != nil {
		s.metrics.BriefingRequests.WithLabelValues("route", "error").Inc()
		return RouteBriefing{}, err
	}

	airports := make([]AirportBriefing, len(codes))
	var wg sync.WaitGroup
	for i, code := range codes {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()
			airports[i] = s.assemble(ctx, code)
		}(i, code)
	}
	wg.Wait()

	route := make([]domain.RouteLeg, len(airports))
	severities := make([]domain.Severity, len(airports))
	for i, b := range airports {
		route[i] = domain.RouteLeg{Code: b.ICAO, Airport: b.Airport, Raw: b.RawText, Severity: b.Severity}
		severities[i] = b.Severity
	}

	// Decisions need the whole route for alternate ranking, so they are
	// computed after every station has resolved.
	for i := range airports {
		airports[i].Decision = domain.Recommend(airports[i].Airport, airports[i].RawText, airports[i].Severity, route)
	}

	overall := domain.WorstSeverity(severities...)
	rb := RouteBriefing{
		Codes:           codes,
		Airports:        airports,
		Legs:            s.legs(airports),
		Timeline:        timeline(airports),
		Overall:         overall,
		Recommendations: routeRecommendations(overall),
		Alerts:          s.routeAlerts(airports),
		GeneratedAt:     s.clock.Now().UTC(),
	}

	s.publishAlerts(ctx, rb.Alerts)

	s.metrics.BriefingRequests.WithLabelValues("route", "success").Inc()
	s.metrics.BriefingDuration.WithLabelValues("route").Observe(time.Since(start).Seconds())
	s.ready.Store(true)

	s.logger.Info("route briefing assembled",
		"codes", strings.Join(codes, ","), "overall", overall, "alerts", len(rb.Alerts))
	return rb, nil
}

// assemble resolves one station: airport record, raw METAR, severity,
// tokens, and the verified-or-deterministic summary. The operational
// decision is filled in by the caller, which knows the route context.
func (s *Service) assemble(ctx context.Context, code string) AirportBriefing {
	code = strings.ToUpper(strings.TrimSpace(code))

	airport, err := s.airports.Lookup(ctx, code)
	if err != nil {
		s.logger.Warn("airport lookup failed, using fallback record", "code", code, "error", err)
		airport = domain.FallbackAirport(code)
	}

	report, err := s.weather.METAR(ctx, code)
	if err != nil {
		// Missing weather is not fatal; the briefing degrades to UNKNOWN.
		s.logger.Warn("weather retrieval failed", "icao", code, "error", err)
		report = domain.Report{ICAO: code}
	}

	severity := domain.ClassifySeverity(report.Raw)
	tokens := domain.Tokenize(report.Raw)
	summary, summarySource := s.summarize(ctx, airport, tokens, severity)

	return AirportBriefing{
		ICAO:          code,
		Airport:       airport,
		RawText:       report.Raw,
		Source:        report.Source,
		Severity:      severity,
		Tokens:        tokens,
		Summary:       summary,
		SummarySource: summarySource,
		Text:          severityBriefing(code, severity, airport),
		GeneratedAt:   s.clock.Now().UTC(),
	}
}

// summarize applies the verify-or-fallback contract: a narrative is used
// only when it preserves every tokenized number, otherwise the
// deterministic summary is substituted.
func (s *Service) summarize(ctx context.Context, airport domain.AirportRef, tokens domain.MetarTokens, severity domain.Severity) (string, string) {
	deterministic := domain.Summarize(tokens)
	if s.narrator == nil {
		return deterministic, "deterministic"
	}

	narrative, err := s.narrator.Narrate(ctx, airport, tokens, severity)
	if err != nil {
		s.metrics.NarrativeResults.WithLabelValues("error").Inc()
		s.logger.Warn("narrator failed, using deterministic summary", "icao", airport.ICAO, "error", err)
		return deterministic, "deterministic"
	}

	if !domain.VerifyNarrative(tokens, narrative) {
		s.metrics.NarrativeResults.WithLabelValues("rejected").Inc()
		s.logger.Warn("narrative rejected by verification, using deterministic summary", "icao", airport.ICAO)
		return deterministic, "deterministic"
	}

	s.metrics.NarrativeResults.WithLabelValues("accepted").Inc()
	return narrative, "narrator"
}

func (s *Service) legs(airports []AirportBriefing) []LegSummary {
	if len(airports) < 2 {
		return nil
	}

	legs := make([]LegSummary, 0, len(airports)-1)
	for i := 0; i < len(airports)-1; i++ {
		from, to := airports[i], airports[i+1]
		leg := LegSummary{From: from.ICAO, To: to.ICAO}
		if from.Airport.HasCoordinates() && to.Airport.HasCoordinates() {
			d := domain.DistanceNM(*from.Airport.Latitude, *from.Airport.Longitude,
				*to.Airport.Latitude, *to.Airport.Longitude)
			leg.DistanceNM = &d
		}
		legs = append(legs, leg)
	}
	return legs
}

func timeline(airports []AirportBriefing) []TimelinePoint {
	points := make([]TimelinePoint, len(airports))
	for i, b := range airports {
		points[i] = TimelinePoint{
			ICAO:      b.ICAO,
			Name:      b.Airport.Name,
			Latitude:  b.Airport.Latitude,
			Longitude: b.Airport.Longitude,
			Severity:  b.Severity,
		}
	}
	return points
}

// routeAlerts builds one alert per SEVERE route member.
func (s *Service) routeAlerts(airports []AirportBriefing) []domain.RouteAlert {
	var alerts []domain.RouteAlert
	for _, b := range airports {
		if b.Severity != domain.SeveritySevere {
			continue
		}
		alerts = append(alerts, domain.RouteAlert{
			ICAO:        b.ICAO,
			Severity:    b.Severity,
			Message:     fmt.Sprintf("Severe weather conditions at %s (%s)", b.ICAO, b.Airport.Name),
			RiskAlerts:  b.Decision.RiskAlerts,
			PublishedAt: s.clock.Now().UTC(),
		})
	}
	return alerts
}

// publishAlerts delivers alerts on a best-effort basis: a broker outage
// must not fail the briefing that produced the alerts.
func (s *Service) publishAlerts(ctx context.Context, alerts []domain.RouteAlert) {
	if s.publisher == nil || len(alerts) == 0 {
		return
	}
	if err := s.publisher.PublishAlerts(ctx, alerts); err != nil {
		s.logger.Error("alert publish failed", "count", len(alerts), "error", err)
		return
	}
	s.metrics.AlertsPublished.Add(float64(len(alerts)))
}

func normalizeCodes(codes []string) []string {
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
			normalized = append(normalized, code)
		}
	}
	return normalized
}
