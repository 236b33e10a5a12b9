// Package metrics provides a Prometheus implementation of driven.Observer.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/skillscout/internal/core/ports/driven"
)

// Ensure Observer implements the interface.
var _ driven.Observer = (*Observer)(nil)

const namespace = "skillscout"

// Observer records discovery pipeline measurements into its own registry.
type Observer struct {
	registry *prometheus.Registry

	providerCalls    *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	cascadeAttempts  *prometheus.HistogramVec
	cascadeOutcomes  *prometheus.CounterVec
	discoveries      *prometheus.CounterVec
	discoveryLatency prometheus.Histogram
	resultCount      prometheus.Histogram
	breakerState     *prometheus.GaugeVec
}

// NewObserver creates an observer with a fresh registry that also carries
// the Go runtime and process collectors.
func NewObserver() *Observer {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Observer{
		registry: reg,

		providerCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Provider search calls by outcome.",
		}, []string{"provider", "outcome"}),

		providerLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Latency of provider search calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8},
		}, []string{"provider"}),

		cascadeAttempts: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cascade_attempts",
			Help:      "Queries issued per provider cascade.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6},
		}, []string{"provider"}),

		cascadeOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascades_total",
			Help:      "Provider cascades by terminal state.",
		}, []string{"provider", "state"}),

		discoveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discoveries_total",
			Help:      "Completed discoveries by subject kind and result origin.",
		}, []string{"kind", "origin"}),

		discoveryLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "discovery_duration_seconds",
			Help:      "End-to-end discovery latency.",
			Buckets:   prometheus.DefBuckets,
		}),

		resultCount: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "discovery_results",
			Help:      "Number of resources returned per discovery.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		}),

		breakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_breaker_state",
			Help:      "Circuit breaker state per provider (0 closed, 1 half-open, 2 open).",
		}, []string{"provider"}),
	}
}

// ProviderCall implements driven.Observer.
func (o *Observer) ProviderCall(providerID, outcome string, elapsed time.Duration) {
	o.providerCalls.WithLabelValues(providerID, outcome).Inc()
	o.providerLatency.WithLabelValues(providerID).Observe(elapsed.Seconds())
}

// CascadeFinished implements driven.Observer.
func (o *Observer) CascadeFinished(providerID, state string, attempts int) {
	o.cascadeOutcomes.WithLabelValues(providerID, state).Inc()
	o.cascadeAttempts.WithLabelValues(providerID).Observe(float64(attempts))
}

// DiscoveryFinished implements driven.Observer.
func (o *Observer) DiscoveryFinished(kind, origin string, results int, elapsed time.Duration) {
	o.discoveries.WithLabelValues(kind, origin).Inc()
	o.discoveryLatency.Observe(elapsed.Seconds())
	o.resultCount.Observe(float64(results))
}

// BreakerStateChanged implements driven.Observer.
func (o *Observer) BreakerStateChanged(providerID, _, to string) {
	o.breakerState.WithLabelValues(providerID).Set(breakerValue(to))
}

// Registry returns the underlying registry.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}

func breakerValue(state string) float64 {
	switch state {
	case "closed":
		return 0
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return -1
	}
}
