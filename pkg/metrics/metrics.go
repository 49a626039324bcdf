package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Appointment metrics
	AppointmentsCreated  prometheus.Counter
	AppointmentsRejected *prometheus.CounterVec

	// Patient metrics
	PatientsRegistered prometheus.Counter
	PatientSearches    prometheus.Counter

	// Notification metrics
	NotificationsPosted *prometheus.CounterVec
	NotificationsUnread prometheus.Gauge

	// Event bus metrics
	EventsEmitted *prometheus.CounterVec
	EventFailures *prometheus.CounterVec
}

// New creates all application metrics and registers them on reg.
// Pass a fresh prometheus.NewRegistry() in tests.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AppointmentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "created_total",
			Help:      "Total number of appointments created",
		}),
		AppointmentsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "rejected_total",
			Help:      "Total number of appointment requests rejected by validation",
		}, []string{"reason"}),

		PatientsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "patients",
			Name:      "registered_total",
			Help:      "Total number of registered patients",
		}),
		PatientSearches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "patients",
			Name:      "searches_total",
			Help:      "Total number of patient searches",
		}),

		NotificationsPosted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "posted_total",
			Help:      "Total number of notifications posted to the feed",
		}, []string{"kind"}),
		NotificationsUnread: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "unread",
			Help:      "Current number of unread notifications",
		}),

		EventsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "emitted_total",
			Help:      "Total number of domain events emitted",
		}, []string{"event_type"}),
		EventFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "handler_failures_total",
			Help:      "Total number of event handler failures",
		}, []string{"event_type"}),
	}
}

// NewNop returns metrics registered on a private registry, for callers
// that do not export them.
func NewNop() *Metrics {
	return New("clinic", prometheus.NewRegistry())
}
