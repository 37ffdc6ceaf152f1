// Package metrics provides Prometheus instrumentation for the insights
// engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DeliveriesIngested counts deliveries accepted into the ledger.
	DeliveriesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crickd_deliveries_ingested_total",
		Help: "Total deliveries accepted into the ledger",
	})

	// InsightsRequests counts insight-bundle requests, partitioned by
	// whether they were served from the idempotency cache.
	InsightsRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crickd_insights_requests_total",
		Help: "Total insight bundle requests",
	}, []string{"source"}) // "cache" or "fresh"

	// RecomputeDuration tracks full-bundle recomputation latency.
	RecomputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "crickd_recompute_duration_seconds",
		Help:    "Insight bundle recomputation latency in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	// LiveMatches tracks the number of matches in "live" status.
	LiveMatches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crickd_live_matches",
		Help: "Number of matches currently live",
	})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crickd_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crickd_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crickd_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Use the route pattern for path label to avoid high cardinality.
		path := r.URL.Path
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
