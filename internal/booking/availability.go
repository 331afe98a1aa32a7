package booking

// IsSlotTaken reports whether bookings already holds the given facility, date
// and start time. Only the start time is compared: two bookings on the same
// facility and date collide when they begin in the same slot.
func IsSlotTaken(bookings []Booking, facilityID, date, startTime string) bool {
	for _, b := range bookings {
		if b.FacilityID == facilityID && b.BookingDate == date && b.StartTime == startTime {
			return true
		}
	}
	return false
}

type SlotStatus struct {
	StartTime string `json:"start_time"`
	Available bool   `json:"available"`
	BookingID string `json:"booking_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

// SlotAvailability returns one entry per start slot for facilityID on date.
func SlotAvailability(bookings []Booking, facilityID, date string) []SlotStatus {
	taken := make(map[string]Booking)
	for _, b := range BookingsForFacilityOnDate(bookings, facilityID, date) {
		if _, ok := taken[b.StartTime]; !ok {
			taken[b.StartTime] = b
		}
	}

	starts := StartSlots()
	out := make([]SlotStatus, 0, len(starts))
	for _, slot := range starts {
		status := SlotStatus{StartTime: slot, Available: true}
		if b, ok := taken[slot]; ok {
			status.Available = false
			status.BookingID = b.ID
			status.UserID = b.UserID
		}
		out = append(out, status)
	}
	return out
}

// MyBookings keeps the bookings owned by userID in input order.
func MyBookings(bookings []Booking, userID string) []Booking {
	out := make([]Booking, 0)
	for _, b := range bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// BookingsForFacilityOnDate keeps the bookings of facilityID on date in input order.
func BookingsForFacilityOnDate(bookings []Booking, facilityID, date string) []Booking {
	out := make([]Booking, 0)
	for _, b := range bookings {
		if b.FacilityID == facilityID && b.BookingDate == date {
			out = append(out, b)
		}
	}
	return out
}
