// Package metrics exposes Prometheus collectors for the pipeline and the
// HTTP server.
//
// A Metrics value owns its registry, so tests and multiple servers in one
// process do not collide on the global default registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/datasweeper/internal/core"
)

const namespace = "datasweeper"

// Metrics records pipeline and HTTP events. It implements core.Observer.
type Metrics struct {
	registry *prometheus.Registry

	filesLoaded   *prometheus.CounterVec
	filesRejected *prometheus.CounterVec
	stages        *prometheus.CounterVec
	exports       *prometheus.CounterVec
	runDuration   prometheus.Histogram
	workspaces    prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

var _ core.Observer = (*Metrics)(nil)

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		filesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_loaded_total",
			Help:      "Uploaded files decoded successfully, by extension.",
		}, []string{"ext"}),
		filesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_rejected_total",
			Help:      "Uploaded files that could not be decoded, by error code.",
		}, []string{"code"}),
		stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleaning_stages_enabled_total",
			Help:      "Cleaning stages turned on by users, by stage.",
		}, []string{"stage"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Files downloaded, by format.",
		}, []string{"format"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_run_duration_seconds",
			Help:      "Time spent running the pipeline over one file.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		workspaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workspaces",
			Help:      "Workspaces held in memory.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.filesLoaded,
		m.filesRejected,
		m.stages,
		m.exports,
		m.runDuration,
		m.workspaces,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) FileLoaded(ext string) {
	m.filesLoaded.WithLabelValues(ext).Inc()
}

func (m *Metrics) FileRejected(code string) {
	m.filesRejected.WithLabelValues(code).Inc()
}

func (m *Metrics) StageEnabled(stage core.Stage) {
	m.stages.WithLabelValues(string(stage)).Inc()
}

func (m *Metrics) Exported(format core.Format) {
	m.exports.WithLabelValues(string(format)).Inc()
}

func (m *Metrics) RunCompleted(d time.Duration) {
	m.runDuration.Observe(d.Seconds())
}

func (m *Metrics) Workspaces(live int) {
	m.workspaces.Set(float64(live))
}

// ObserveRequest records one served HTTP request. route should be the
// router pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
