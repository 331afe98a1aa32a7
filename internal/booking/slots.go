package booking

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimeSlots is the fixed hourly grid a facility can be booked on.
var TimeSlots = []string{
	"06:00", "07:00", "08:00", "09:00", "10:00", "11:00",
	"12:00", "13:00", "14:00", "15:00", "16:00", "17:00",
	"18:00", "19:00", "20:00", "21:00", "22:00",
}

// StartSlots returns every slot a booking may start at. The last slot only
// closes a booking.
func StartSlots() []string {
	out := make([]string, len(TimeSlots)-1)
	copy(out, TimeSlots[:len(TimeSlots)-1])
	return out
}

// EndSlotOptions returns the slots strictly after start. An off-grid start
// has no end options.
func EndSlotOptions(start string) []string {
	idx := slotIndex(start)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(TimeSlots)-idx-1)
	copy(out, TimeSlots[idx+1:])
	return out
}

// DefaultEndSlot is the slot one hour after start, or the last slot when start
// is already the last one.
func DefaultEndSlot(start string) string {
	idx := slotIndex(start)
	if idx < 0 {
		return ""
	}
	if idx == len(TimeSlots)-1 {
		return TimeSlots[idx]
	}
	return TimeSlots[idx+1]
}

func IsStartSlot(value string) bool {
	idx := slotIndex(value)
	return idx >= 0 && idx < len(TimeSlots)-1
}

func slotIndex(value string) int {
	for i, slot := range TimeSlots {
		if slot == value {
			return i
		}
	}
	return -1
}

// ParseDate parses a YYYY-MM-DD booking date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
