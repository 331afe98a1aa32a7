// internal/api/bookings/handlers.go
package bookings

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/api/apiutil"
	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/booking"
	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
	"github.com/codr1/Gatehouse/internal/email"
	"github.com/codr1/Gatehouse/internal/metrics"
	"github.com/codr1/Gatehouse/internal/ratelimit"
)

// Dependencies are the collaborators the booking handlers use. Notifier and
// Limiter may be nil.
type Dependencies struct {
	Queries  *dbgen.Queries
	Ledger   *booking.Ledger
	Registry *booking.Registry
	Notifier *email.Notifier
	Limiter  *ratelimit.Limiter
}

var (
	deps        Dependencies
	handlerOnce sync.Once
)

type createBookingRequest struct {
	FacilityID  string `json:"facility_id" validate:"notblank"`
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"omitempty,datetime=15:04"`
}

func InitHandlers(d Dependencies) {
	if d.Queries == nil || d.Ledger == nil || d.Registry == nil {
		return
	}
	handlerOnce.Do(func() {
		deps = d
	})
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if deps.Ledger == nil {
		log.Ctx(r.Context()).Error().Msg("Booking handlers not initialized")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error"})
		return false
	}
	return true
}

// POST /api/v1/bookings
func HandleBookingCreate(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx := r.Context()
	logger := log.Ctx(ctx)

	society, err := authz.RequireSociety(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if deps.Limiter != nil {
		result := deps.Limiter.AllowBooking(society.UserID)
		if !result.Allowed {
			metrics.RecordBookingAttempt(metrics.OutcomeRateLimited)
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			logger.Warn().Int("retry_after_seconds", retryAfter).Msg("Booking attempts rate limited")
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusTooManyRequests, Message: "Too many booking attempts, try again later"})
			return
		}
	}

	var req createBookingRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		metrics.RecordBookingAttempt(metrics.OutcomeInvalid)
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if err := apiutil.Validate(req); err != nil {
		metrics.RecordBookingAttempt(metrics.OutcomeInvalid)
		apiutil.WriteError(w, r, err)
		return
	}

	endTime := strings.TrimSpace(req.EndTime)
	if endTime == "" {
		endTime = booking.DefaultEndSlot(req.StartTime)
	}

	created, err := deps.Ledger.Book(ctx, booking.CreateParams{
		FacilityID:  strings.TrimSpace(req.FacilityID),
		SocietyID:   society.SocietyID,
		UserID:      society.UserID,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     endTime,
	})
	if err != nil {
		switch {
		case booking.IsConflict(err):
			metrics.RecordBookingAttempt(metrics.OutcomeConflict)
		case booking.IsValidation(err), booking.IsNotFound(err):
			metrics.RecordBookingAttempt(metrics.OutcomeInvalid)
		default:
			metrics.RecordBookingAttempt(metrics.OutcomeError)
		}
		apiutil.WriteError(w, r, err)
		return
	}
	metrics.RecordBookingAttempt(metrics.OutcomeCreated)

	if deps.Notifier.Enabled() {
		if details, ok := bookingDetails(ctx, created); ok {
			deps.Notifier.DeliverAsync(ctx, created.SocietyID, created.UserID, email.KindConfirmation, email.BuildBookingConfirmation(details))
		}
	}

	_ = apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"booking": created})
}

// DELETE /api/v1/bookings/{id}
func HandleBookingCancel(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx := r.Context()

	society, err := authz.RequireSociety(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	bookingID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	cancelled, err := deps.Ledger.Cancel(ctx, bookingID, callerFor(society))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if deps.Notifier.Enabled() {
		cancelledBy := ""
		if cancelled.UserID != society.UserID {
			cancelledBy = string(society.Role)
		}
		if details, ok := bookingDetails(ctx, cancelled); ok {
			deps.Notifier.DeliverAsync(ctx, cancelled.SocietyID, cancelled.UserID, email.KindCancellation, email.BuildBookingCancellation(details, cancelledBy))
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/bookings
func HandleBookingList(w http.ResponseWriter, r *http.Request) {
	listUpcoming(w, r, false)
}

// GET /api/v1/bookings/mine
func HandleMyBookings(w http.ResponseWriter, r *http.Request) {
	listUpcoming(w, r, true)
}

func listUpcoming(w http.ResponseWriter, r *http.Request, mineOnly bool) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	upcoming, err := deps.Ledger.ListUpcoming(r.Context(), society.SocietyID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if mineOnly {
		upcoming = booking.MyBookings(upcoming, society.UserID)
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"bookings": upcoming})
}

func callerFor(society *authz.SocietyContext) booking.Caller {
	return booking.Caller{
		UserID:    society.UserID,
		SocietyID: society.SocietyID,
		CanManage: society.CanManage(),
	}
}

// bookingDetails resolves display names for an email. Lookup failures are
// logged and skip the email.
func bookingDetails(ctx context.Context, b booking.Booking) (email.BookingDetails, bool) {
	logger := log.Ctx(ctx)

	societyRow, err := deps.Queries.GetSocietyByID(ctx, b.SocietyID)
	if err != nil {
		logger.Error().Err(err).Str("society_id", b.SocietyID).Msg("Failed to load society for booking email")
		return email.BookingDetails{}, false
	}
	facility, err := deps.Registry.GetFacility(ctx, b.SocietyID, b.FacilityID)
	if err != nil {
		logger.Error().Err(err).Str("facility_id", b.FacilityID).Msg("Failed to load facility for booking email")
		return email.BookingDetails{}, false
	}

	return email.BookingDetails{
		SocietyName:  societyRow.Name,
		FacilityName: facility.Name,
		Date:         b.BookingDate,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
	}, true
}
