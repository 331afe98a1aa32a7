package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/api/v1/bookings", "201", 0.05)
	RecordHTTPRequest("POST", "/api/v1/bookings", "201", 0.07)
	RecordHTTPRequest("POST", "/api/v1/bookings", "409", 0.01)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "409")))
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestRecordBookingOutcomes(t *testing.T) {
	BookingAttemptsTotal.Reset()
	BookingConflictsTotal.Reset()

	RecordBookingAttempt(OutcomeCreated)
	RecordBookingAttempt(OutcomeConflict)
	RecordBookingAttempt(OutcomeConflict)
	RecordBookingConflict(GateSnapshot)
	RecordBookingConflict(GateIndex)

	assert.Equal(t, float64(1), testutil.ToFloat64(BookingAttemptsTotal.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, float64(2), testutil.ToFloat64(BookingAttemptsTotal.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, float64(1), testutil.ToFloat64(BookingConflictsTotal.WithLabelValues(GateIndex)))
}

func TestRecordCounters(t *testing.T) {
	cancellations := testutil.ToFloat64(BookingCancellationsTotal)
	facilities := testutil.ToFloat64(FacilitiesCreatedTotal)

	RecordBookingCancellation()
	RecordFacilityCreated()

	assert.Equal(t, cancellations+1, testutil.ToFloat64(BookingCancellationsTotal))
	assert.Equal(t, facilities+1, testutil.ToFloat64(FacilitiesCreatedTotal))
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("booking_reminder", "sent")
	RecordEmail("booking_reminder", "failed")

	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("booking_reminder", "failed")))
}

func TestRecordCommunityEvents(t *testing.T) {
	VisitorEventsTotal.Reset()
	GateEventsTotal.Reset()
	ComplaintEventsTotal.Reset()

	RecordVisitorEvent("pending")
	RecordVisitorEvent("approved")
	RecordGateEvent(GateEventEntry)
	RecordGateEvent(GateEventEntry)
	RecordGateEvent(GateEventExit)
	RecordComplaintEvent("resolved")

	assert.Equal(t, float64(1), testutil.ToFloat64(VisitorEventsTotal.WithLabelValues("approved")))
	assert.Equal(t, float64(2), testutil.ToFloat64(GateEventsTotal.WithLabelValues(GateEventEntry)))
	assert.Equal(t, float64(1), testutil.ToFloat64(GateEventsTotal.WithLabelValues(GateEventExit)))
	assert.Equal(t, float64(1), testutil.ToFloat64(ComplaintEventsTotal.WithLabelValues("resolved")))
}
