package email

import (
	"fmt"
	"strings"
	"time"
)

type Message struct {
	Subject string
	Body    string
}

type BookingDetails struct {
	SocietyName  string
	FacilityName string
	Date         string // YYYY-MM-DD
	StartTime    string // HH:MM
	EndTime      string // HH:MM
}

// FormatBookingDate renders a YYYY-MM-DD date for humans, falling back to the
// raw value when it does not parse.
func FormatBookingDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("Monday, Jan 2, 2006")
}

func (d BookingDetails) timeRange() string {
	return fmt.Sprintf("%s - %s", d.StartTime, d.EndTime)
}

func BuildBookingConfirmation(details BookingDetails) Message {
	var body strings.Builder
	fmt.Fprintf(&body, "Your booking at %s is confirmed.\n\n", details.SocietyName)
	writeBookingLines(&body, details)
	body.WriteString("\nTo cancel, open the facility bookings page and cancel the booking.\n")

	return Message{
		Subject: fmt.Sprintf("Booking confirmed: %s on %s", details.FacilityName, details.Date),
		Body:    body.String(),
	}
}

// BuildBookingCancellation describes a cancelled booking. cancelledBy is empty
// when the owner cancelled it themselves.
func BuildBookingCancellation(details BookingDetails, cancelledBy string) Message {
	var body strings.Builder
	if cancelledBy == "" {
		fmt.Fprintf(&body, "Your booking at %s has been cancelled.\n\n", details.SocietyName)
	} else {
		fmt.Fprintf(&body, "Your booking at %s was cancelled by the society %s.\n\n", details.SocietyName, cancelledBy)
	}
	writeBookingLines(&body, details)

	return Message{
		Subject: fmt.Sprintf("Booking cancelled: %s on %s", details.FacilityName, details.Date),
		Body:    body.String(),
	}
}

// BuildBookingReminder lists a member's bookings for one day.
func BuildBookingReminder(societyName string, bookings []BookingDetails) Message {
	if len(bookings) == 0 {
		return Message{}
	}

	var body strings.Builder
	fmt.Fprintf(&body, "A reminder of your bookings at %s on %s:\n\n", societyName, FormatBookingDate(bookings[0].Date))
	for _, b := range bookings {
		fmt.Fprintf(&body, "- %s, %s\n", b.FacilityName, b.timeRange())
	}

	subject := fmt.Sprintf("Reminder: %s tomorrow", bookings[0].FacilityName)
	if len(bookings) > 1 {
		subject = fmt.Sprintf("Reminder: %d bookings tomorrow", len(bookings))
	}
	return Message{Subject: subject, Body: body.String()}
}

func writeBookingLines(body *strings.Builder, details BookingDetails) {
	fmt.Fprintf(body, "Facility: %s\n", details.FacilityName)
	fmt.Fprintf(body, "Date: %s\n", FormatBookingDate(details.Date))
	fmt.Fprintf(body, "Time: %s\n", details.timeRange())
}
