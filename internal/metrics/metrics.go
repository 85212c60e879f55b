// Package metrics exposes Prometheus instrumentation for analyses and history storage.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis sources.
const (
	SourceGenerative = "generative"
	SourceHeuristic  = "heuristic"
)

// Metrics holds the collectors of one registry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	analyses        *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
	analyzeDuration *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	storeErrors     *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// New creates a registry with the Go and process collectors plus the ATS collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ats_analyses_total",
				Help: "Completed resume analyses by the path that produced the result",
			},
			[]string{"source"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ats_generative_fallbacks_total",
				Help: "Generative analysis failures that fell back to the heuristic scorer",
			},
			[]string{"reason"},
		),
		analyzeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ats_analyze_duration_seconds",
				Help:    "End to end analysis duration in seconds",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"source"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ats_result_cache_lookups_total",
				Help: "Generative result cache lookups",
			},
			[]string{"result"},
		),
		storeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ats_history_store_errors_total",
				Help: "History store operations that failed",
			},
			[]string{"operation"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ats_http_requests_total",
				Help: "HTTP requests by route pattern and status code",
			},
			[]string{"route", "code"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.analyses, m.fallbacks, m.analyzeDuration, m.cacheLookups, m.storeErrors, m.httpRequests,
	)
	return m
}

// ObserveAnalysis records one finished analysis.
func (m *Metrics) ObserveAnalysis(source string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(source).Inc()
	m.analyzeDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// IncFallback counts a fallback to the heuristic scorer.
func (m *Metrics) IncFallback(reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(reason).Inc()
}

// IncCache counts a cache lookup; hit selects the label.
func (m *Metrics) IncCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// IncStoreError counts a failed history store operation.
func (m *Metrics) IncStoreError(operation string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(operation).Inc()
}

// IncHTTP counts an HTTP request.
func (m *Metrics) IncHTTP(route string, code int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Registry returns the underlying registry, for tests and custom exporters.
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
