package booking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleBookings() []Booking {
	return []Booking{
		{ID: "b1", FacilityID: "pool", UserID: "alice", BookingDate: "2025-06-01", StartTime: "09:00", EndTime: "10:00"},
		{ID: "b2", FacilityID: "pool", UserID: "bob", BookingDate: "2025-06-01", StartTime: "11:00", EndTime: "12:00"},
		{ID: "b3", FacilityID: "gym", UserID: "alice", BookingDate: "2025-06-01", StartTime: "09:00", EndTime: "10:00"},
		{ID: "b4", FacilityID: "pool", UserID: "alice", BookingDate: "2025-06-02", StartTime: "09:00", EndTime: "11:00"},
	}
}

func TestIsSlotTaken(t *testing.T) {
	bookings := sampleBookings()

	require.True(t, IsSlotTaken(bookings, "pool", "2025-06-01", "09:00"))
	require.True(t, IsSlotTaken(bookings, "gym", "2025-06-01", "09:00"))
	require.False(t, IsSlotTaken(bookings, "pool", "2025-06-01", "10:00"))
	require.False(t, IsSlotTaken(bookings, "pool", "2025-06-03", "09:00"))
	require.False(t, IsSlotTaken(bookings, "tennis", "2025-06-01", "09:00"))
	require.False(t, IsSlotTaken(nil, "pool", "2025-06-01", "09:00"))
}

func TestIsSlotTakenComparesStartOnly(t *testing.T) {
	bookings := []Booking{{FacilityID: "pool", BookingDate: "2025-06-01", StartTime: "09:00", EndTime: "11:00"}}
	require.False(t, IsSlotTaken(bookings, "pool", "2025-06-01", "10:00"))
}

func TestMyBookingsIsExactSubset(t *testing.T) {
	bookings := sampleBookings()

	for _, user := range []string{"alice", "bob", "carol"} {
		mine := MyBookings(bookings, user)
		for _, b := range mine {
			require.Equal(t, user, b.UserID)
		}
		expected := 0
		for _, b := range bookings {
			if b.UserID == user {
				expected++
			}
		}
		require.Len(t, mine, expected, "user %s", user)
	}

	require.Equal(t, []string{"b1", "b3", "b4"}, bookingIDs(MyBookings(bookings, "alice")))
	require.NotNil(t, MyBookings(nil, "alice"))
}

func TestBookingsForFacilityOnDate(t *testing.T) {
	bookings := sampleBookings()

	require.Equal(t, []string{"b1", "b2"}, bookingIDs(BookingsForFacilityOnDate(bookings, "pool", "2025-06-01")))
	require.Equal(t, []string{"b4"}, bookingIDs(BookingsForFacilityOnDate(bookings, "pool", "2025-06-02")))
	require.Empty(t, BookingsForFacilityOnDate(bookings, "gym", "2025-06-02"))
}

func TestSlotAvailability(t *testing.T) {
	slots := SlotAvailability(sampleBookings(), "pool", "2025-06-01")
	require.Len(t, slots, len(StartSlots()))

	byStart := make(map[string]SlotStatus, len(slots))
	for _, s := range slots {
		byStart[s.StartTime] = s
	}
	require.False(t, byStart["09:00"].Available)
	require.Equal(t, "b1", byStart["09:00"].BookingID)
	require.False(t, byStart["11:00"].Available)
	require.Equal(t, "bob", byStart["11:00"].UserID)
	require.True(t, byStart["10:00"].Available)
	require.Empty(t, byStart["10:00"].BookingID)
}

func TestNoDuplicateStartPerFacilityDate(t *testing.T) {
	var accepted []Booking
	requests := []Booking{
		{FacilityID: "pool", BookingDate: "2025-06-01", StartTime: "09:00"},
		{FacilityID: "pool", BookingDate: "2025-06-01", StartTime: "09:00"},
		{FacilityID: "pool", BookingDate: "2025-06-01", StartTime: "10:00"},
		{FacilityID: "gym", BookingDate: "2025-06-01", StartTime: "09:00"},
		{FacilityID: "pool", BookingDate: "2025-06-02", StartTime: "09:00"},
		{FacilityID: "pool", BookingDate: "2025-06-01", StartTime: "10:00"},
	}
	for i, req := range requests {
		if IsSlotTaken(accepted, req.FacilityID, req.BookingDate, req.StartTime) {
			continue
		}
		req.ID = fmt.Sprintf("b%d", i)
		accepted = append(accepted, req)
	}
	require.Len(t, accepted, 4)

	seen := make(map[string]bool)
	for _, b := range accepted {
		key := b.FacilityID + "|" + b.BookingDate + "|" + b.StartTime
		require.False(t, seen[key], "duplicate slot %s", key)
		seen[key] = true
	}
}

func bookingIDs(bookings []Booking) []string {
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	return ids
}
