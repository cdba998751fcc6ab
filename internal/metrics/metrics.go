package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK         = "ok"
	ResultError      = "error"
	ResultMalformed  = "malformed"
	ResultSuppressed = "suppressed"
)

// Poll kinds.
const (
	KindStatus  = "status"
	KindTank    = "tank"
	KindCommand = "command"
)

// Metrics groups the panel's collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry   *prometheus.Registry
	polls      *prometheus.CounterVec
	dispatches *prometheus.CounterVec
	stale      *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// New builds collectors on a private registry so tests can create as many as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "panel_polls_total",
			Help: "Device polls by kind and result.",
		}, []string{"kind", "result"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "panel_dispatches_total",
			Help: "Commands dispatched to the device by subsystem and result.",
		}, []string{"subsystem", "result"}),
		stale: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "panel_stale_responses_total",
			Help: "Status responses discarded because a newer one was already applied.",
		}, []string{"subsystem"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "panel_device_request_seconds",
			Help:    "Latency of requests to the device backend.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.polls, m.dispatches, m.stale, m.latency)
	return m
}

func (m *Metrics) Poll(kind, result string) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) Dispatch(subsystem, result string) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(subsystem, result).Inc()
}

func (m *Metrics) Stale(subsystem string) {
	if m == nil {
		return
	}
	m.stale.WithLabelValues(subsystem).Inc()
}

func (m *Metrics) ObserveRequest(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(kind).Observe(d.Seconds())
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
