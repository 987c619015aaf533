// Package metrics exposes Prometheus collectors for the chatbot.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the chatbot
type Metrics struct {
	repliesTotal        *prometheus.CounterVec
	recordFailuresTotal prometheus.Counter
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates the collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		repliesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_replies_total",
				Help: "Total number of replies by matched rule",
			},
			[]string{"rule"},
		),

		recordFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chatbot_exchange_record_failures_total",
				Help: "Total number of exchanges that could not be written to the store",
			},
		),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatbot_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.repliesTotal,
		m.recordFailuresTotal,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveReply counts a reply produced by rule.
func (m *Metrics) ObserveReply(rule string) {
	m.repliesTotal.WithLabelValues(rule).Inc()
}

// ObserveRecordFailure counts a failed exchange write.
func (m *Metrics) ObserveRecordFailure() {
	m.recordFailuresTotal.Inc()
}

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
