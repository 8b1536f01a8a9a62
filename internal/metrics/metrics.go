package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_requests_total",
			Help: "Booking requests by result",
		},
		[]string{"result"},
	)

	BookingConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Optimistic version conflicts detected while booking seats",
		},
	)

	BookingAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_attempts",
			Help:    "Attempts needed per booking request",
			Buckets: []float64{1, 2, 3, 4, 5, 8},
		},
	)

	NotificationsDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sellout_notifications_total",
			Help: "Sellout notifications delivered to subscribers",
		},
	)

	ActiveSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sellout_subscriptions_active",
			Help: "Subscriptions waiting for their threshold",
		},
	)

	QueueFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_queue_fallbacks_total",
			Help: "Notifications delivered outside the queue because it was full",
		},
	)
)

// Booking results
const (
	ResultSuccess     = "success"
	ResultInvalid     = "invalid"
	ResultUnavailable = "unavailable"
	ResultConflict    = "conflict"
	ResultError       = "error"
)
