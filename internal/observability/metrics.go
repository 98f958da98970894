package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ussdflow",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ussdflow",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
	interactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ussdflow",
			Subsystem: "session",
			Name:      "interactions_total",
			Help:      "USSD interactions answered, by directive.",
		},
		[]string{"service", "directive"},
	)
	interactionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ussdflow",
			Subsystem: "session",
			Name:      "interaction_duration_seconds",
			Help:      "USSD interaction handling duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "directive"},
	)
	completions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ussdflow",
			Subsystem: "session",
			Name:      "completions_total",
			Help:      "Sessions reported finished by the gateway, by status.",
		},
		[]string{"service", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, interactions, interactionDuration, completions)
	})
}

func RecordHTTPRequest(service, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(service, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(service, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordInteraction(service, directive string, duration time.Duration) {
	RegisterMetrics()
	interactions.WithLabelValues(service, directive).Inc()
	interactionDuration.WithLabelValues(service, directive).Observe(duration.Seconds())
}

func RecordSessionCompletion(service, status string) {
	RegisterMetrics()
	completions.WithLabelValues(service, status).Inc()
}
