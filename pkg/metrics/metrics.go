package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_created_total",
			Help: "Total notifications persisted",
		},
		[]string{"type"},
	)

	NotificationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_failed_total",
			Help: "Notification writes that failed",
		},
	)

	ChargesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charges_processed_total",
			Help: "Payment charges by provider and outcome",
		},
		[]string{"provider", "status"},
	)

	CheckinsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkins_processed_total",
			Help: "Customer check-ins recorded",
		},
	)
)

// RecordHTTPRequestDuration records the latency of a finished request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementNotificationCreated increments the persisted-notification counter.
func IncrementNotificationCreated(notificationType string) {
	NotificationsCreated.WithLabelValues(notificationType).Inc()
}

// IncrementChargeProcessed increments the charge counter for a provider.
func IncrementChargeProcessed(provider, status string) {
	ChargesProcessed.WithLabelValues(provider, status).Inc()
}
