package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// MetricsService owns the Prometheus registry for HTTP, cache and seating instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheLatency    prometheus.Histogram

	seated          *prometheus.CounterVec
	unseated        *prometheus.CounterVec
	violations      prometheus.Histogram
	plansGenerated  prometheus.Counter
	conflicts       prometheus.Counter
	repeatMoves     *prometheus.CounterVec
	exportsRendered *prometheus.CounterVec

	requestCount uint64
	planCount    uint64
	startedAt    time.Time
}

// MetricsSnapshot is a compact view used by the health endpoint.
type MetricsSnapshot struct {
	RequestsTotal  uint64  `json:"requests_total"`
	PlansGenerated uint64  `json:"plans_generated"`
	Goroutines     int     `json:"goroutines"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// NewMetricsService registers every collector on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total cache misses",
		}),
		cacheLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_latency_seconds",
			Help:    "Latency for cache operations",
			Buckets: prometheus.DefBuckets,
		}),
		seated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seating_students_seated_total",
			Help: "Students placed by the seat allocator",
		}, []string{"gender"}),
		unseated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seating_students_unseated_total",
			Help: "Eligible students left without a seat after the room pool was exhausted",
		}, []string{"gender"}),
		violations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "seating_adjacency_violations",
			Help:    "Same-batch neighbour pairs per plan",
			Buckets: []float64{0, 1, 2, 5, 10, 25},
		}),
		plansGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seating_plans_generated_total",
			Help: "Seating plans generated",
		}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_conflicts_detected_total",
			Help: "Cross-batch schedule conflicts reported by detection runs",
		}),
		repeatMoves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "repeat_paper_moves_total",
			Help: "Repeat papers moved to the following Saturday",
		}, []string{"overwrite"}),
		exportsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "exports_rendered_total",
			Help: "Rendered attendance sheets and seating charts",
		}, []string{"kind", "format"}),
		startedAt: time.Now(),
	}

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		m.requestDuration, m.requestTotal,
		m.cacheHits, m.cacheMisses, m.cacheLatency,
		m.seated, m.unseated, m.violations, m.plansGenerated,
		m.conflicts, m.repeatMoves, m.exportsRendered,
		goroutines,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
}

// RecordCacheOperation records a cache lookup.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// RecordSeating counts the outcome of one gender allocation.
func (m *MetricsService) RecordSeating(gender models.Gender, seated, unseated int) {
	if m == nil {
		return
	}
	label := string(gender)
	m.seated.WithLabelValues(label).Add(float64(seated))
	m.unseated.WithLabelValues(label).Add(float64(unseated))
}

// RecordPlan observes the violations left in a freshly generated plan.
func (m *MetricsService) RecordPlan(violations int) {
	if m == nil {
		return
	}
	m.plansGenerated.Inc()
	m.violations.Observe(float64(violations))
	atomic.AddUint64(&m.planCount, 1)
}

// RecordConflicts adds detected schedule conflicts.
func (m *MetricsService) RecordConflicts(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.conflicts.Add(float64(count))
}

// RecordRepeatPaperMove counts a reschedule, split by whether it overwrote a slot.
func (m *MetricsService) RecordRepeatPaperMove(overwrite bool) {
	if m == nil {
		return
	}
	m.repeatMoves.WithLabelValues(strconv.FormatBool(overwrite)).Inc()
}

// RecordExport counts a rendered document.
func (m *MetricsService) RecordExport(kind, format string) {
	if m == nil {
		return
	}
	m.exportsRendered.WithLabelValues(kind, format).Inc()
}

// Snapshot returns aggregate counters for the health endpoint.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		RequestsTotal:  atomic.LoadUint64(&m.requestCount),
		PlansGenerated: atomic.LoadUint64(&m.planCount),
		Goroutines:     runtime.NumGoroutine(),
		UptimeSeconds:  time.Since(m.startedAt).Seconds(),
	}
}
