// Package metrics exposes Prometheus metrics for HTTP traffic and call tracking events.
// Every method is safe on a nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	callsCreated    *prometheus.CounterVec
	importRows      *prometheus.CounterVec
	remindersSent   prometheus.Counter
	promotions      prometheus.Counter
}

// New initializes a private registry with the HTTP and domain metrics
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "calltracker_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "calltracker_http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	callsCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "calltracker_calls_created_total",
		Help: "Calls created by status.",
	}, []string{"status"})
	importRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "calltracker_import_rows_total",
		Help: "Imported rows by entity and result.",
	}, []string{"entity", "result"})
	remindersSent := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calltracker_call_reminders_sent_total",
		Help: "Call soon reminders issued.",
	})
	promotions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calltracker_client_promotions_total",
		Help: "Prospects promoted to paying clients.",
	})

	registry.MustRegister(
		requests, duration, callsCreated, importRows, remindersSent, promotions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		callsCreated:    callsCreated,
		importRows:      importRows,
		remindersSent:   remindersSent,
		promotions:      promotions,
	}
}

// Handler serves the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request count and duration per chi route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Registerer exposes the registry for additional collectors
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

func (m *Metrics) CallCreated(status string) {
	if m == nil {
		return
	}
	m.callsCreated.WithLabelValues(status).Inc()
}

// ImportRows records the outcome counts of one import batch
func (m *Metrics) ImportRows(entity string, imported, updated, skipped int) {
	if m == nil {
		return
	}
	m.importRows.WithLabelValues(entity, "imported").Add(float64(imported))
	m.importRows.WithLabelValues(entity, "updated").Add(float64(updated))
	m.importRows.WithLabelValues(entity, "skipped").Add(float64(skipped))
}

func (m *Metrics) RemindersSent(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.remindersSent.Add(float64(n))
}

func (m *Metrics) ClientPromoted() {
	if m == nil {
		return
	}
	m.promotions.Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
