// Package metrics provides Prometheus metrics for client operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcome labels.
const (
	OutcomeOK             = "ok"
	OutcomeClientError    = "client_error"
	OutcomeServerError    = "server_error"
	OutcomeTransportError = "transport_error"
)

// OutcomeForStatus maps an HTTP status to its outcome label.
func OutcomeForStatus(status int) string {
	switch {
	case status >= 200 && status < 400:
		return OutcomeOK
	case status >= 400 && status < 500:
		return OutcomeClientError
	default:
		return OutcomeServerError
	}
}

// Metrics holds all Prometheus metrics for client operations. A nil
// *Metrics is a valid no-op recorder.
type Metrics struct {
	requestsInFlight prometheus.Gauge
	requestsTotal    *prometheus.CounterVec
	requestDuration  prometheus.Histogram

	authTotal    *prometheus.CounterVec
	refreshTotal *prometheus.CounterVec

	guardDecisions *prometheus.CounterVec
}

// New creates and registers Prometheus metrics on the given registerer.
// A nil registerer uses the default registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	if reg == nil {
		factory = promauto.With(prometheus.DefaultRegisterer)
	}

	return &Metrics{
		requestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "course_client_requests_in_flight",
			Help: "Requests currently in flight",
		}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "course_client_requests_total",
			Help: "Total requests by method and outcome",
		}, []string{"method", "outcome"}),
		requestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "course_client_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		authTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "course_client_auth_total",
			Help: "Authentication operations by action and result",
		}, []string{"action", "result"}),
		refreshTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "course_client_token_refresh_total",
			Help: "Token refresh attempts by result",
		}, []string{"result"}),
		guardDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "course_client_guard_decisions_total",
			Help: "Navigation guard decisions by action",
		}, []string{"action"}),
	}
}

// RequestStarted marks one request entering flight.
func (m *Metrics) RequestStarted() {
	if m == nil {
		return
	}
	m.requestsInFlight.Inc()
}

// RequestFinished marks one request leaving flight and records its outcome
// and duration.
func (m *Metrics) RequestFinished(method, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsInFlight.Dec()
	m.requestsTotal.WithLabelValues(method, outcome).Inc()
	m.requestDuration.Observe(seconds)
}

// RecordAuth records one auth operation (login, logout, check).
func (m *Metrics) RecordAuth(action, result string) {
	if m == nil {
		return
	}
	m.authTotal.WithLabelValues(action, result).Inc()
}

// RecordRefresh records one token refresh attempt.
func (m *Metrics) RecordRefresh(result string) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(result).Inc()
}

// RecordGuardDecision records one navigation guard decision.
func (m *Metrics) RecordGuardDecision(action string) {
	if m == nil {
		return
	}
	m.guardDecisions.WithLabelValues(action).Inc()
}
