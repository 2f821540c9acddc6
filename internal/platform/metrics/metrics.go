package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del servicio sobre un registry propio
// (evita colisiones con el default registry en tests).
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	AccessDenials     *prometheus.CounterVec
	ReorderAlerts     *prometheus.CounterVec
	CatalogCacheLooks *prometheus.CounterVec

	AlertEvaluationFailures prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "avacc",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "avacc",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		AccessDenials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "avacc",
			Name:      "access_denials_total",
			Help:      "Requests rejected by the access gate, by reason.",
		}, []string{"reason"}),
		ReorderAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "avacc",
			Name:      "reorder_alerts_raised_total",
			Help:      "Reorder alerts raised from inventory mutations, by type.",
		}, []string{"type"}),
		CatalogCacheLooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "avacc",
			Name:      "catalog_cache_lookups_total",
			Help:      "Catalog cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		AlertEvaluationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avacc",
			Name:      "reorder_alert_evaluation_failures_total",
			Help:      "Inventory mutations persisted whose reorder alert evaluation failed.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.AccessDenials,
		m.ReorderAlerts,
		m.CatalogCacheLooks,
		m.AlertEvaluationFailures,
	)
	return m
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Deny cuenta un rechazo del gate. Nil-safe.
func (m *Metrics) Deny(reason string) {
	if m == nil {
		return
	}
	m.AccessDenials.WithLabelValues(reason).Inc()
}

// AlertRaised cuenta una alerta de reorden nueva. Nil-safe.
func (m *Metrics) AlertRaised(alertType string) {
	if m == nil {
		return
	}
	m.ReorderAlerts.WithLabelValues(alertType).Inc()
}

// CacheLookup cuenta hit/miss/error del cache de catálogos. Nil-safe.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.CatalogCacheLooks.WithLabelValues(result).Inc()
}

// AlertEvaluationFailed cuenta una evaluación de alertas que no terminó. Nil-safe.
func (m *Metrics) AlertEvaluationFailed() {
	if m == nil {
		return
	}
	m.AlertEvaluationFailures.Inc()
}
