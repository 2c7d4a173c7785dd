// Package wx fetches raw METARs through a chain of upstream providers:
// NOAA's TGFTP text mirror first, the AviationWeather.gov data API second,
// and an offline synthetic generator last so briefings always have input.
package wx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/sykeriin/aerobrief/internal/domain"
)

// NOAASource fetches METARs from the NOAA TGFTP station files.
type NOAASource struct {
	baseURL    string
	httpClient *http.Client
	backoff    backoffConfig
	circuit    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewNOAASource creates the TGFTP provider.
func NewNOAASource(baseURL string, timeout time.Duration, logger *slog.Logger) *NOAASource {
	return &NOAASource{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		backoff:    defaultBackoff(),
		circuit:    newBreaker("noaa"),
		logger:     logger,
	}
}

func (s *NOAASource) Name() string { return "noaa" }

// METAR fetches the station file for an ICAO code. TGFTP files carry two
// lines: an observation timestamp and the raw METAR.
func (s *NOAASource) METAR(ctx context.Context, icao string) (domain.Report, error) {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s/%s.TXT", s.baseURL, icao), nil)
	}

	resp, err := doRequestWithResilience(ctx, s.httpClient, s.backoff, s.circuit, buildRequest)
	if err != nil {
		return domain.Report{}, fmt.Errorf("noaa request for %s: %w", icao, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Report{}, fmt.Errorf("noaa read body: %w", err)
	}

	raw, observedAt, err := parseStationFile(string(body), icao)
	if err != nil {
		return domain.Report{}, err
	}

	return domain.Report{
		ICAO:       icao,
		Raw:        raw,
		Source:     s.Name(),
		ObservedAt: observedAt,
	}, nil
}

// parseStationFile extracts the METAR line from a TGFTP station file:
//
//	2026/08/23 11:53
//	KTUS 231153Z 09015G25KT 10SM TS SCT030 BKN060 28/22 A2992
//
// The METAR line must start with the requested station code.
func parseStationFile(body, icao string) (string, time.Time, error) {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) < 2 {
		return "", time.Time{}, fmt.Errorf("noaa station file for %s: unexpected format", icao)
	}

	raw := strings.TrimSpace(lines[1])
	if !strings.HasPrefix(raw, icao) {
		return "", time.Time{}, fmt.Errorf("noaa station file for %s: report is for another station", icao)
	}

	observedAt, err := time.Parse("2006/01/02 15:04", strings.TrimSpace(lines[0]))
	if err != nil {
		// The timestamp line is informational; the METAR is still usable.
		return raw, time.Time{}, nil
	}
	return raw, observedAt.UTC(), nil
}
