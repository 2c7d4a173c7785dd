package wx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/sykeriin/aerobrief/internal/domain"
)

// AWCSource fetches METARs from the AviationWeather.gov data API.
type AWCSource struct {
	baseURL    string
	httpClient *http.Client
	backoff    backoffConfig
	circuit    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewAWCSource creates the AviationWeather.gov provider.
func NewAWCSource(baseURL string, timeout time.Duration, logger *slog.Logger) *AWCSource {
	return &AWCSource{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		backoff:    defaultBackoff(),
		circuit:    newBreaker("awc"),
		logger:     logger,
	}
}

func (s *AWCSource) Name() string { return "awc" }

// METAR queries the JSON endpoint for a single station.
func (s *AWCSource) METAR(ctx context.Context, icao string) (domain.Report, error) {
	buildRequest := func() (*http.Request, error) {
		params := url.Values{
			"format": {"json"},
			"ids":    {icao},
		}
		return http.NewRequest(http.MethodGet, s.baseURL+"/metar?"+params.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, s.httpClient, s.backoff, s.circuit, buildRequest)
	if err != nil {
		return domain.Report{}, fmt.Errorf("awc request for %s: %w", icao, err)
	}
	defer resp.Body.Close()

	var payload []struct {
		RawText string `json:"raw_text"`
		ObsTime int64  `json:"obs_time"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Report{}, fmt.Errorf("awc decode response: %w", err)
	}

	if len(payload) == 0 || strings.TrimSpace(payload[0].RawText) == "" {
		return domain.Report{}, fmt.Errorf("awc: no observation for %s", icao)
	}

	report := domain.Report{
		ICAO:   icao,
		Raw:    strings.TrimSpace(payload[0].RawText),
		Source: s.Name(),
	}
	if payload[0].ObsTime > 0 {
		report.ObservedAt = time.Unix(payload[0].ObsTime, 0).UTC()
	}
	return report, nil
}
