package booking

import (
	"time"

	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
)

type Facility struct {
	ID          string    `json:"id"`
	SocietyID   string    `json:"society_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Booking struct {
	ID          string    `json:"id"`
	FacilityID  string    `json:"facility_id"`
	SocietyID   string    `json:"society_id"`
	UserID      string    `json:"user_id"`
	BookingDate string    `json:"booking_date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}

// Caller identifies who is acting and in which society. CanManage is true for
// secretaries and admins of that society.
type Caller struct {
	UserID    string
	SocietyID string
	CanManage bool
}

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func facilityFromRow(row dbgen.Facility) Facility {
	return Facility{
		ID:          row.ID,
		SocietyID:   row.SocietyID,
		Name:        row.Name,
		Description: row.Description.String,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt,
	}
}

func bookingFromRow(row dbgen.FacilityBooking) Booking {
	return Booking{
		ID:          row.ID,
		FacilityID:  row.FacilityID,
		SocietyID:   row.SocietyID,
		UserID:      row.UserID,
		BookingDate: row.BookingDate,
		StartTime:   row.StartTime,
		EndTime:     row.EndTime,
		CreatedAt:   row.CreatedAt,
	}
}

func bookingsFromRows(rows []dbgen.FacilityBooking) []Booking {
	out := make([]Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, bookingFromRow(row))
	}
	return out
}
