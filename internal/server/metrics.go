package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics interface {
	IncRequestsTotal(route string, status int)
	ObserveRequestDuration(route string, duration time.Duration)
	IncMemoHits()
	IncMemoMisses()
}

type promMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	memoHits        prometheus.Counter
	memoMisses      prometheus.Counter
}

// NewMetrics registers the HTTP metrics on reg. A nil reg disables them.
func NewMetrics(reg prometheus.Registerer) Metrics {
	if reg == nil {
		return noopMetrics{}
	}
	factory := promauto.With(reg)
	return &promMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gymbro_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gymbro_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		memoHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "gymbro_lookup_memo_hits_total",
			Help: "Lookup responses served from memory",
		}),
		memoMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "gymbro_lookup_memo_misses_total",
			Help: "Lookup responses fetched from the provider",
		}),
	}
}

func (m *promMetrics) IncRequestsTotal(route string, status int) {
	m.requestsTotal.WithLabelValues(route, statusBucket(status)).Inc()
}

func (m *promMetrics) ObserveRequestDuration(route string, duration time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *promMetrics) IncMemoHits()   { m.memoHits.Inc() }
func (m *promMetrics) IncMemoMisses() { m.memoMisses.Inc() }

func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

type noopMetrics struct{}

func (noopMetrics) IncRequestsTotal(_ string, _ int)                {}
func (noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (noopMetrics) IncMemoHits()                                     {}
func (noopMetrics) IncMemoMisses()                                   {}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// metricsMiddleware labels requests with the matched chi route pattern so
// proxied paths do not explode the label set.
func metricsMiddleware(metrics Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			metrics.IncRequestsTotal(route, sw.status)
			metrics.ObserveRequestDuration(route, time.Since(start))
		})
	}
}
