package wx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sykeriin/aerobrief/internal/domain"
	"github.com/sykeriin/aerobrief/internal/observability"
)

// Source is one upstream METAR provider.
type Source interface {
	Name() string
	METAR(ctx context.Context, icao string) (domain.Report, error)
}

// Chain tries sources in order and returns the first successful report.
// Provider outcomes are counted per source so dashboards show which
// upstreams are actually serving traffic.
type Chain struct {
	sources []Source
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewChain builds a provider chain. Order matters: put the most
// authoritative source first and the synthetic generator last.
func NewChain(logger *slog.Logger, metrics *observability.Metrics, sources ...Source) *Chain {
	return &Chain{
		sources: sources,
		logger:  logger,
		metrics: metrics,
	}
}

// METAR fetches the report for an ICAO code from the first source that
// succeeds. Returns an error only when every source fails, which cannot
// happen while the synthetic source terminates the chain.
func (c *Chain) METAR(ctx context.Context, icao string) (domain.Report, error) {
	icao = strings.ToUpper(strings.TrimSpace(icao))

	var errs []error
	for _, source := range c.sources {
		report, err := source.METAR(ctx, icao)
		if err != nil {
			c.metrics.ProviderRequests.WithLabelValues(source.Name(), "error").Inc()
			c.logger.Warn("weather provider failed",
				"provider", source.Name(), "icao", icao, "error", err)
			errs = append(errs, err)
			continue
		}

		c.metrics.ProviderRequests.WithLabelValues(source.Name(), "success").Inc()
		c.logger.Debug("weather provider served report",
			"provider", source.Name(), "icao", icao)
		return report, nil
	}

	return domain.Report{}, fmt.Errorf("all weather providers failed for %s: %w", icao, errors.Join(errs...))
}
