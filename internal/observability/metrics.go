package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	evaluations     *prometheus.CounterVec
	lastShown       prometheus.Gauge
	exportRows      prometheus.Histogram
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "directory_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_http_errors_total",
			Help: "Failed HTTP requests by route, method and error code.",
		}, []string{"path", "method", "code"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_evaluations_total",
			Help: "Directory filter/sort/render passes by trigger.",
		}, []string{"trigger"}),
		lastShown: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "directory_last_result_size",
			Help: "Number of records shown by the most recent evaluation.",
		}),
		exportRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "directory_export_rows",
			Help:    "Rows written per CSV export.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}),
	}
	reg.MustRegister(
		m.requestCount,
		m.requestDuration,
		m.errorCount,
		m.evaluations,
		m.lastShown,
		m.exportRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// ObserveEvaluation counts a directory evaluation.
func (m *Metrics) ObserveEvaluation(trigger string, shown, _ int) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(trigger).Inc()
	m.lastShown.Set(float64(shown))
}

// ObserveExport records the size of a CSV export.
func (m *Metrics) ObserveExport(rows int) {
	if m == nil {
		return
	}
	m.exportRows.Observe(float64(rows))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
