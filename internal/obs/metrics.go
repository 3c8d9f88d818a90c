// Package obs holds the Prometheus instrumentation for the grantlink
// service: generic HTTP request metrics plus the token lifecycle counters.
package obs

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "grantlink_http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grantlink_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grantlink_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	tokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grantlink_tokens_issued_total",
			Help: "Grant tokens minted, by login mode.",
		},
		[]string{"login_mode"},
	)

	redemptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grantlink_redemptions_total",
			Help: "Guarded-use attempts, by outcome (success or rejection code).",
		},
		[]string{"outcome"},
	)
)

var initOnce sync.Once

// Init registers the metrics with the default registry. Safe to call more
// than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight,
			httpRequestsTotal,
			httpRequestDuration,
			tokensIssuedTotal,
			redemptionsTotal,
		)
	})
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// TokenIssued counts one minted token.
func TokenIssued(loginMode string) {
	tokensIssuedTotal.WithLabelValues(loginMode).Inc()
}

// Redemption counts one guarded-use attempt by its audit outcome.
func Redemption(outcome string) {
	redemptionsTotal.WithLabelValues(outcome).Inc()
}

// Instrument wraps a handler with request count, latency, and in-flight
// metrics. Paths are canonicalised so per-token and per-scope URLs do not
// explode label cardinality.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		path := CanonicalPath(r.URL.Path)
		status := strconv.Itoa(sw.code)
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpInFlight.Dec()
	})
}

// CanonicalPath collapses the variable segments of known routes to
// placeholders. Unknown paths are kept as-is.
func CanonicalPath(path string) string {
	if path == "" {
		return "/"
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	parts := strings.Split(path, "/")
	switch {
	case len(parts) >= 4 && parts[1] == "v1" && parts[2] == "tokens":
		parts[3] = ":jti"
		return strings.Join(parts, "/")
	case len(parts) == 4 && parts[1] == "v1" && parts[2] == "redeem":
		parts[3] = ":scope"
		return strings.Join(parts, "/")
	}
	return path
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
