package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// briefing service.
type Metrics struct {
	BriefingRequests *prometheus.CounterVec   // labels: kind={airport,route}, outcome={success,error}
	BriefingDuration *prometheus.HistogramVec // labels: kind={airport,route}

	// Weather provider chain metrics.
	ProviderRequests *prometheus.CounterVec // labels: provider, outcome={success,error,miss}

	// Narrative verification metrics.
	NarrativeResults *prometheus.CounterVec // labels: result={accepted,rejected,error}
	NarratorEnabled  prometheus.Gauge

	// Airport lookup metrics.
	AirportLookups *prometheus.CounterVec // labels: result={hit,fallback,error}

	AlertsPublished prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		BriefingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aerobrief",
			Name:      "briefing_requests_total",
			Help:      "Briefing requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
		BriefingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aerobrief",
			Name:      "briefing_duration_seconds",
			Help:      "Duration of a complete briefing assembly.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aerobrief",
			Name:      "provider_requests_total",
			Help:      "Weather provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		NarrativeResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aerobrief",
			Name:      "narrative_results_total",
			Help:      "Generative narrative outcomes after verification.",
		}, []string{"result"}),
		NarratorEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aerobrief",
			Name:      "narrator_enabled",
			Help:      "1 when the generative narrator is enabled, 0 otherwise.",
		}),
		AirportLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aerobrief",
			Name:      "airport_lookups_total",
			Help:      "Airport reference lookups by result.",
		}, []string{"result"}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aerobrief",
			Name:      "alerts_published_total",
			Help:      "Severe-weather route alerts published to the broker.",
		}),
	}

	prometheus.MustRegister(
		m.BriefingRequests,
		m.BriefingDuration,
		m.ProviderRequests,
		m.NarrativeResults,
		m.NarratorEnabled,
		m.AirportLookups,
		m.AlertsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		BriefingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "aerobrief", Name: "briefing_requests_total"}, []string{"kind", "outcome"}),
		BriefingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "aerobrief", Name: "briefing_duration_seconds"}, []string{"kind"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "aerobrief", Name: "provider_requests_total"}, []string{"provider", "outcome"}),
		NarrativeResults: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "aerobrief", Name: "narrative_results_total"}, []string{"result"}),
		NarratorEnabled:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "aerobrief", Name: "narrator_enabled"}),
		AirportLookups:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "aerobrief", Name: "airport_lookups_total"}, []string{"result"}),
		AlertsPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "aerobrief", Name: "alerts_published_total"}),
	}
}
