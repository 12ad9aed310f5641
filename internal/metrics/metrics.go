// Package metrics holds the Prometheus instrumentation for catalog requests
// and view-state transitions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes used as the "outcome" label on catalog metrics.
const (
	OutcomeOK             = "ok"
	OutcomeUpstreamError  = "upstream_error"
	OutcomeTransportError = "transport_error"
	OutcomeEmptyResponse  = "empty_response"
	OutcomeConfigError    = "config_error"
	OutcomeNoResults      = "no_results"
	OutcomeStale          = "stale"
	OutcomeError          = "error"
)

// Recorder groups the collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	CatalogRequests        *prometheus.CounterVec
	CatalogRequestDuration *prometheus.HistogramVec
	Transitions            *prometheus.CounterVec
	StaleCompletions       *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
// Passing a nil registerer creates unregistered collectors, which is what tests want.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		CatalogRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "watchnext_catalog_requests_total",
				Help: "Total number of catalog API requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		CatalogRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "watchnext_catalog_request_duration_seconds",
				Help:    "Catalog API request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint"},
		),
		Transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "watchnext_view_transitions_total",
				Help: "Total number of completed view-state transitions by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		StaleCompletions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "watchnext_stale_completions_total",
				Help: "Completions that arrived after a newer action had started",
			},
			[]string{"action", "applied"},
		),
	}
}

// ObserveRequest records one catalog round trip.
func (r *Recorder) ObserveRequest(endpoint, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.CatalogRequests.WithLabelValues(endpoint, outcome).Inc()
	r.CatalogRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// ObserveTransition records a completed orchestrator action.
func (r *Recorder) ObserveTransition(action, outcome string) {
	if r == nil {
		return
	}
	r.Transitions.WithLabelValues(action, outcome).Inc()
}

// ObserveStale records a completion from a superseded action.
func (r *Recorder) ObserveStale(action string, applied bool) {
	if r == nil {
		return
	}
	label := "false"
	if applied {
		label = "true"
	}
	r.StaleCompletions.WithLabelValues(action, label).Inc()
}
