package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/db"
	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
	"github.com/codr1/Gatehouse/internal/metrics"
)

// Ledger holds confirmed bookings. Inserts are gated twice: by IsSlotTaken on
// the caller's snapshot and by the unique slot index in storage.
type Ledger struct {
	db       *db.DB
	clock    Clock
	location *time.Location
}

type LedgerOption func(*Ledger)

func WithClock(clock Clock) LedgerOption {
	return func(l *Ledger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithLocation sets the timezone that defines "today" for the society.
func WithLocation(loc *time.Location) LedgerOption {
	return func(l *Ledger) {
		if loc != nil {
			l.location = loc
		}
	}
}

func NewLedger(database *db.DB, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		db:       database,
		clock:    realClock{},
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type CreateParams struct {
	FacilityID  string
	SocietyID   string
	UserID      string
	BookingDate string
	StartTime   string
	EndTime     string
}

// Today returns the society-local date as YYYY-MM-DD.
func (l *Ledger) Today() string {
	return l.clock.Now().In(l.location).Format(DateLayout)
}

// Tomorrow returns the society-local date after Today.
func (l *Ledger) Tomorrow() string {
	return l.clock.Now().In(l.location).AddDate(0, 0, 1).Format(DateLayout)
}

// Book loads the society's upcoming bookings as the snapshot and creates the
// booking against it.
func (l *Ledger) Book(ctx context.Context, params CreateParams) (Booking, error) {
	snapshot, err := l.ListUpcoming(ctx, params.SocietyID)
	if err != nil {
		return Booking{}, err
	}
	return l.Create(ctx, snapshot, params)
}

// Create validates params, rejects slots already present in snapshot and
// inserts the booking. A unique index violation is reported as the same
// ConflictError as the snapshot check.
func (l *Ledger) Create(ctx context.Context, snapshot []Booking, params CreateParams) (Booking, error) {
	if err := l.validate(params); err != nil {
		return Booking{}, err
	}

	if _, err := getFacility(ctx, l.db.Queries, params.SocietyID, params.FacilityID); err != nil {
		return Booking{}, err
	}

	conflict := ConflictError{FacilityID: params.FacilityID, Date: params.BookingDate, StartTime: params.StartTime}
	if IsSlotTaken(snapshot, params.FacilityID, params.BookingDate, params.StartTime) {
		log.Ctx(ctx).Info().
			Str("facility_id", params.FacilityID).
			Str("booking_date", params.BookingDate).
			Str("start_time", params.StartTime).
			Msg("Booking rejected by snapshot check")
		metrics.RecordBookingConflict(metrics.GateSnapshot)
		return Booking{}, conflict
	}

	var created Booking
	err := l.db.RunInTx(ctx, func(txdb *db.DB) error {
		id := uuid.NewString()
		if err := txdb.Queries.CreateBooking(ctx, dbgen.CreateBookingParams{
			ID:          id,
			FacilityID:  params.FacilityID,
			SocietyID:   params.SocietyID,
			UserID:      params.UserID,
			BookingDate: params.BookingDate,
			StartTime:   params.StartTime,
			EndTime:     params.EndTime,
		}); err != nil {
			if db.IsUniqueViolation(err) {
				return conflict
			}
			return fmt.Errorf("create booking: %w", err)
		}

		row, err := txdb.Queries.GetBookingByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load booking: %w", err)
		}
		created = bookingFromRow(row)
		return nil
	})
	if err != nil {
		if IsConflict(err) {
			log.Ctx(ctx).Info().
				Str("facility_id", params.FacilityID).
				Str("booking_date", params.BookingDate).
				Str("start_time", params.StartTime).
				Msg("Booking rejected by slot index")
			metrics.RecordBookingConflict(metrics.GateIndex)
		}
		return Booking{}, err
	}

	log.Ctx(ctx).Info().
		Str("society_id", created.SocietyID).
		Str("facility_id", created.FacilityID).
		Str("booking_id", created.ID).
		Str("user_id", created.UserID).
		Msg("Booking created")
	return created, nil
}

func (l *Ledger) validate(params CreateParams) error {
	if strings.TrimSpace(params.SocietyID) == "" {
		return ValidationError{Field: "society_id", Reason: "society is required"}
	}
	if strings.TrimSpace(params.UserID) == "" {
		return ValidationError{Field: "user_id", Reason: "user is required"}
	}
	if strings.TrimSpace(params.FacilityID) == "" {
		return ValidationError{Field: "facility_id", Reason: "facility is required"}
	}
	if _, err := ParseDate(params.BookingDate); err != nil {
		return ValidationError{Field: "booking_date", Reason: "booking_date must be YYYY-MM-DD"}
	}
	if params.BookingDate < l.Today() {
		return ValidationError{Field: "booking_date", Reason: "booking_date must not be in the past"}
	}
	if !IsStartSlot(params.StartTime) {
		return ValidationError{Field: "start_time", Reason: "start_time must be an hourly slot between 06:00 and 21:00"}
	}
	if slotIndex(params.EndTime) <= slotIndex(params.StartTime) {
		return ValidationError{Field: "end_time", Reason: "end_time must be a slot after start_time"}
	}
	return nil
}

// Cancel removes one booking. The caller must own it or manage the booking's
// society.
func (l *Ledger) Cancel(ctx context.Context, bookingID string, caller Caller) (Booking, error) {
	var cancelled Booking
	err := l.db.RunInTx(ctx, func(txdb *db.DB) error {
		row, err := txdb.Queries.GetBookingByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NotFoundError{Resource: "booking", ID: bookingID}
			}
			return fmt.Errorf("get booking: %w", err)
		}
		if !canCancel(row, caller) {
			return NotAuthorizedError{Action: "cancel this booking"}
		}

		affected, err := txdb.Queries.DeleteBooking(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("delete booking: %w", err)
		}
		if affected == 0 {
			return NotFoundError{Resource: "booking", ID: bookingID}
		}
		cancelled = bookingFromRow(row)
		return nil
	})
	if err != nil {
		return Booking{}, err
	}

	log.Ctx(ctx).Info().
		Str("society_id", cancelled.SocietyID).
		Str("booking_id", cancelled.ID).
		Str("user_id", caller.UserID).
		Msg("Booking cancelled")
	metrics.RecordBookingCancellation()
	return cancelled, nil
}

func canCancel(row dbgen.FacilityBooking, caller Caller) bool {
	if caller.UserID != "" && row.UserID == caller.UserID {
		return true
	}
	return caller.CanManage && caller.SocietyID == row.SocietyID
}

// ListUpcoming returns the society's bookings from today on, ordered by date
// and start time.
func (l *Ledger) ListUpcoming(ctx context.Context, societyID string) ([]Booking, error) {
	rows, err := l.db.Queries.ListUpcomingBookings(ctx, dbgen.ListUpcomingBookingsParams{
		SocietyID:   societyID,
		BookingDate: l.Today(),
	})
	if err != nil {
		return nil, fmt.Errorf("list upcoming bookings: %w", err)
	}
	return bookingsFromRows(rows), nil
}

// ListOnDate returns the society's bookings on date ordered by start time.
func (l *Ledger) ListOnDate(ctx context.Context, societyID, date string) ([]Booking, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, ValidationError{Field: "date", Reason: "date must be YYYY-MM-DD"}
	}
	rows, err := l.db.Queries.ListBookingsOnDate(ctx, dbgen.ListBookingsOnDateParams{
		SocietyID:   societyID,
		BookingDate: date,
	})
	if err != nil {
		return nil, fmt.Errorf("list bookings on date: %w", err)
	}
	return bookingsFromRows(rows), nil
}
