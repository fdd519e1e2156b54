// Package metrics provides Prometheus instrumentation for the application.
// This is part of the platform layer and contains no business logic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reserva"

// Metrics holds all Prometheus collectors used across the application.
type Metrics struct {
	AvailabilityQueries  prometheus.Counter
	SlotsOffered         prometheus.Counter
	BookingsCreated      prometheus.Counter
	BookingsCancelled    *prometheus.CounterVec
	SlotConflicts        prometheus.Counter
	RemindersSent        *prometheus.CounterVec
	NotificationFailures *prometheus.CounterVec
}

// New registers all collectors on the given registerer. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AvailabilityQueries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "availability_queries_total",
			Help:      "Number of availability computations performed.",
		}),
		SlotsOffered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "slots_offered_total",
			Help:      "Number of open slots returned across availability queries.",
		}),
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "bookings_created_total",
			Help:      "Number of bookings successfully created.",
		}),
		BookingsCancelled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "bookings_cancelled_total",
			Help:      "Number of bookings cancelled, by actor.",
		}, []string{"actor"}),
		SlotConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "slot_conflicts_total",
			Help:      "Number of booking attempts rejected because the slot was taken.",
		}),
		RemindersSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminders",
			Name:      "sent_total",
			Help:      "Number of booking reminders dispatched, by channel.",
		}, []string{"channel"}),
		NotificationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "failures_total",
			Help:      "Number of failed notification deliveries, by channel.",
		}, []string{"channel"}),
	}
}
