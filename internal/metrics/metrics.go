package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymbooking",
			Name:      "booking_attempts_total",
			Help:      "Booking attempts by result.",
		},
		[]string{"result"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gymbooking",
			Name:      "booking_cancelled_total",
			Help:      "Bookings removed, including member purges.",
		},
	)

	sessionChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymbooking",
			Name:      "session_changes_total",
			Help:      "Admin changes to class sessions.",
		},
		[]string{"action"},
	)

	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymbooking",
			Name:      "outbox_events_published_total",
			Help:      "Outbox events handed to the event bus.",
		},
		[]string{"type"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingAttempts, bookingCancelled, sessionChanges, eventsPublished)
	})
}

func IncBookingAttempt(result string) {
	bookingAttempts.WithLabelValues(result).Inc()
}

func AddBookingCancelled(n int) {
	bookingCancelled.Add(float64(n))
}

func IncSessionChange(action string) {
	sessionChanges.WithLabelValues(action).Inc()
}

func IncEventPublished(eventType string) {
	eventsPublished.WithLabelValues(eventType).Inc()
}
