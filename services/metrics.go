// services/metrics.go
package services

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "brand_visibility"

// Metrics tracks platform searches and the scores they produce.
//
// Metrics:
//   - brand_visibility_platform_searches_total: searches by platform and status
//   - brand_visibility_search_cache_hits_total: answers served from the cache
//   - brand_visibility_platform_latency_seconds: platform call latency
//   - brand_visibility_visibility_score: visibility score distribution
//   - brand_visibility_sentiment_score: sentiment score distribution
//   - brand_visibility_monitor_runs_total: monitoring runs by status
type Metrics struct {
	registry    *prometheus.Registry
	searches    *prometheus.CounterVec
	cacheHits   *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	visibility  *prometheus.HistogramVec
	sentiment   *prometheus.HistogramVec
	monitorRuns *prometheus.CounterVec
}

// NewMetrics creates and registers the metrics on a dedicated registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "platform_searches_total",
				Help:      "Total number of AI platform searches by status",
			},
			[]string{"platform", "status"},
		),
		cacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "search_cache_hits_total",
				Help:      "Total number of searches answered from the cache",
			},
			[]string{"platform"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "platform_latency_seconds",
				Help:      "AI platform call latency in seconds",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40},
			},
			[]string{"platform"},
		),
		visibility: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "visibility_score",
				Help:      "Brand visibility score of analyzed responses",
				Buckets:   prometheus.LinearBuckets(0, 10, 11),
			},
			[]string{"platform"},
		),
		sentiment: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "sentiment_score",
				Help:      "Brand sentiment score of analyzed responses",
				Buckets:   prometheus.LinearBuckets(-1, 0.25, 9),
			},
			[]string{"platform"},
		),
		monitorRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "monitor_runs_total",
				Help:      "Total number of brand monitoring runs by status",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		m.searches,
		m.cacheHits,
		m.latency,
		m.visibility,
		m.sentiment,
		m.monitorRuns,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// All recorders accept a nil receiver so services can run without metrics.

func (m *Metrics) RecordSearch(platform, status string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(platform, status).Inc()
}

func (m *Metrics) RecordCacheHit(platform string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(platform).Inc()
}

func (m *Metrics) RecordLatency(platform string, seconds float64) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(platform).Observe(seconds)
}

func (m *Metrics) RecordScores(platform string, visibility, sentiment float64) {
	if m == nil {
		return
	}
	m.visibility.WithLabelValues(platform).Observe(visibility)
	m.sentiment.WithLabelValues(platform).Observe(sentiment)
}

func (m *Metrics) RecordMonitorRun(status string) {
	if m == nil {
		return
	}
	m.monitorRuns.WithLabelValues(status).Inc()
}
