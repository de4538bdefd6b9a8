package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fuga-catalog/catalog/internal/common/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus registry and the collectors exposed by the
// API server.
type Metrics struct {
	registry       *prometheus.Registry
	httpReqCnt     *prometheus.CounterVec
	httpDur        *prometheus.HistogramVec
	cleanupRuns    prometheus.Counter
	cleanupDeleted prometheus.Counter
}

// New creates a registry with process, Go and catalog collectors registered.
func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: buckets}, []string{"method", "route", "status"})
	r.MustRegister(httpReqCnt, httpDur)

	cleanupRuns := prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: "coverart_cleanup_runs_total"})
	cleanupDeleted := prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: "coverart_cleanup_deleted_total"})
	r.MustRegister(cleanupRuns, cleanupDeleted)

	return &Metrics{
		registry:       r,
		httpReqCnt:     httpReqCnt,
		httpDur:        httpDur,
		cleanupRuns:    cleanupRuns,
		cleanupDeleted: cleanupDeleted,
	}
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// HTTPMiddleware records request counts and latencies per route.
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}

// ObserveCleanup records one cleanup sweep and the number of records removed.
func (m *Metrics) ObserveCleanup(deleted int) {
	m.cleanupRuns.Inc()
	m.cleanupDeleted.Add(float64(deleted))
}
