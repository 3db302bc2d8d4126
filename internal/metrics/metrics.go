package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turfbook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "turfbook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turfbook_bookings_total",
			Help: "Booking attempts by outcome and channel",
		},
		[]string{"outcome", "channel"},
	)

	PaymentsMarkedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turfbook_payments_marked_total",
			Help: "Bookings marked fully paid, by source",
		},
		[]string{"source"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turfbook_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "turfbook_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	RealtimeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "turfbook_realtime_connections",
			Help: "Open real-time connections",
		},
	)

	RealtimeMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turfbook_realtime_messages_total",
			Help: "Real-time messages by direction and event",
		},
		[]string{"direction", "event"},
	)

	RealtimeDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "turfbook_realtime_dropped_clients_total",
			Help: "Connections dropped because their send queue was full",
		},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turfbook_events_published_total",
			Help: "Domain events published, by routing key and status",
		},
		[]string{"routing_key", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordBooking counts a booking attempt. channel is "http" or "ws".
func RecordBooking(outcome, channel string) {
	BookingsTotal.WithLabelValues(outcome, channel).Inc()
}

func RecordPaymentMarked(source string) {
	PaymentsMarkedTotal.WithLabelValues(source).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordRealtimeMessage(direction, event string) {
	RealtimeMessagesTotal.WithLabelValues(direction, event).Inc()
}

func RecordRealtimeDrop() {
	RealtimeDroppedTotal.Inc()
}

func RecordEvent(routingKey, status string) {
	EventsPublishedTotal.WithLabelValues(routingKey, status).Inc()
}
