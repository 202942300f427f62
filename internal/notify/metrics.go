package notify

import "github.com/prometheus/client_golang/prometheus"

var (
	// sentTotal counts delivery attempts by message type and outcome
	// ("sent" or "failed").
	sentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "huntschedule_notifications_total",
			Help: "Outbound notification deliveries by type and outcome.",
		},
		[]string{"type", "outcome"},
	)

	droppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "huntschedule_notify_queue_dropped_total",
			Help: "Notifications dropped because the queue was full or closed.",
		},
	)
)

func init() {
	prometheus.MustRegister(sentTotal, droppedTotal)
}
