// Package observability registers the service's Prometheus metrics.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gorun",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests processed, labelled by method and status.",
	}, []string{"method", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gorun",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	rowsPersisted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gorun",
		Subsystem: "persistence",
		Name:      "rows_persisted_total",
		Help:      "Rows written, labelled by table.",
	}, []string{"table"})
)

func init() {
	prometheus.MustRegister(requestCounter, requestDuration, rowsPersisted)
}

// RecordRequest counts a completed HTTP request.
func RecordRequest(method string, status int, elapsed time.Duration) {
	requestCounter.WithLabelValues(method, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// RecordRowPersisted counts a persisted row for the given table.
func RecordRowPersisted(table string) {
	rowsPersisted.WithLabelValues(table).Inc()
}

// StatusRecorder captures the response status for middleware metrics.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

// WriteHeader records the status before delegating.
func (r *StatusRecorder) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}
