package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/unity-app/unity-engine/internal/core/domain"
)

const namespace = "unity"

// Metrics owns its registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec
	jobs         *prometheus.CounterVec
	jobDuration  prometheus.Histogram
	jobsDropped  prometheus.Counter
	milestones   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Redis cache lookups by cache and result.",
		}, []string{"cache", "result"}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consistency_jobs_total",
			Help:      "Consistency recompute jobs by outcome.",
		}, []string{"outcome"}),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "consistency_job_duration_seconds",
			Help:      "Time spent recomputing one goal.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}),
		jobsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consistency_jobs_dropped_total",
			Help:      "Jobs dropped because the worker queue was full.",
		}),
		milestones: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "milestones_published_total",
			Help:      "Milestone events published by kind.",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.cacheLookups,
		m.jobs,
		m.jobDuration,
		m.jobsDropped,
		m.milestones,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware labels requests by route template, so /goals/:id stays one
// series.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) CacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
}

func (m *Metrics) JobDropped() {
	if m == nil {
		return
	}
	m.jobsDropped.Inc()
}

func (m *Metrics) JobProcessed(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.jobs.WithLabelValues(outcome).Inc()
	m.jobDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) MilestonePublished(kind domain.MilestoneKind) {
	if m == nil {
		return
	}
	m.milestones.WithLabelValues(string(kind)).Inc()
}
