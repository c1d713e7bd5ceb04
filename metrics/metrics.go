package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// ReportsSubmittedTotal counts accepted submissions by severity.
	ReportsSubmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roadreports",
		Subsystem: "triage",
		Name:      "reports_submitted_total",
		Help:      "Total number of reports accepted and persisted, labeled by classified severity.",
	}, []string{"severity"})

	// StatusUpdatesTotal counts successful status changes by target status.
	StatusUpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roadreports",
		Subsystem: "triage",
		Name:      "status_updates_total",
		Help:      "Total number of successful status updates, labeled by the new status.",
	}, []string{"status"})

	// ClassificationFailuresTotal counts classifier errors and timeouts.
	ClassificationFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "roadreports",
		Subsystem: "triage",
		Name:      "classification_failures_total",
		Help:      "Total number of submissions rejected because the severity classifier failed or timed out.",
	})

	// ClassificationDurationSeconds is the classifier round-trip time.
	ClassificationDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "roadreports",
		Subsystem: "triage",
		Name:      "classification_duration_seconds",
		Help:      "Time spent waiting for the severity classifier per submission.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})

	// PublishErrorsTotal counts failed RabbitMQ publishes (best-effort path).
	PublishErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "roadreports",
		Subsystem: "triage",
		Name:      "publish_errors_total",
		Help:      "Total number of RabbitMQ publish errors for submitted reports.",
	})

	// WebSocketClients is the current number of connected dashboard clients.
	WebSocketClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "roadreports",
		Subsystem: "triage",
		Name:      "websocket_clients",
		Help:      "Current number of connected dashboard WebSocket clients.",
	})
)

// Register registers triage metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ReportsSubmittedTotal,
			StatusUpdatesTotal,
			ClassificationFailuresTotal,
			ClassificationDurationSeconds,
			PublishErrorsTotal,
			WebSocketClients,
		)
	})
}
