package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeCreated     = "created"
	OutcomeConflict    = "conflict"
	OutcomeInvalid     = "invalid"
	OutcomeRateLimited = "rate_limited"
	OutcomeError       = "error"

	GateSnapshot = "snapshot"
	GateIndex    = "index"

	GateEventEntry = "entry"
	GateEventExit  = "exit"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatehouse_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gatehouse_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	BookingAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatehouse_booking_attempts_total",
			Help: "Booking create attempts by outcome",
		},
		[]string{"outcome"},
	)

	BookingConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatehouse_booking_conflicts_total",
			Help: "Booking conflicts by the gate that rejected them",
		},
		[]string{"gate"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gatehouse_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	FacilitiesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gatehouse_facilities_created_total",
			Help: "Total number of facilities created",
		},
	)

	VisitorEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatehouse_visitor_events_total",
			Help: "Visitor requests by resulting status",
		},
		[]string{"status"},
	)

	GateEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatehouse_gate_events_total",
			Help: "Gate log entries and exits",
		},
		[]string{"event"},
	)

	ComplaintEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatehouse_complaint_events_total",
			Help: "Complaints filed and status changes by resulting status",
		},
		[]string{"status"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatehouse_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)
)

func RecordHTTPRequest(method, route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

func RecordBookingAttempt(outcome string) {
	BookingAttemptsTotal.WithLabelValues(outcome).Inc()
}

func RecordBookingConflict(gate string) {
	BookingConflictsTotal.WithLabelValues(gate).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordFacilityCreated() {
	FacilitiesCreatedTotal.Inc()
}

func RecordVisitorEvent(status string) {
	VisitorEventsTotal.WithLabelValues(status).Inc()
}

func RecordGateEvent(event string) {
	GateEventsTotal.WithLabelValues(event).Inc()
}

func RecordComplaintEvent(status string) {
	ComplaintEventsTotal.WithLabelValues(status).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
