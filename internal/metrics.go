package internal

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics instruments the HTTP surface. The registry is private so the
// scrape carries only dashboard series, never the default Go collectors of
// other libraries in the process.
type Metrics struct {
	registry   *prometheus.Registry
	reqTotal   *prometheus.CounterVec
	reqLatency *prometheus.HistogramVec
	inFlight   prometheus.Gauge
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		reqTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "HTTP requests served by the dashboard, by route pattern.",
		}, []string{"method", "path", "status"}),
		reqLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_http_requests_in_flight",
			Help: "Requests currently being served.",
		}),
	}
}

// Middleware records every finished request.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.inFlight.Inc()
			defer m.inFlight.Dec()

			rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(rw, r)
			m.observe(r, rw.code, time.Since(start))
		})
	}
}

// observe files the request under its chi route pattern, so /activos/{id}
// stays one series no matter the id.
func (m *Metrics) observe(r *http.Request, code int, elapsed time.Duration) {
	path := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil && len(rctx.RoutePatterns) > 0 {
		path = rctx.RoutePatterns[len(rctx.RoutePatterns)-1]
	}

	status := strconv.Itoa(code)
	m.reqTotal.WithLabelValues(r.Method, path, status).Inc()
	m.reqLatency.WithLabelValues(r.Method, path, status).Observe(elapsed.Seconds())
}

// Handler serves the scrape endpoint for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the status code for metrics and request logging.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	return sr.ResponseWriter.Write(b)
}
