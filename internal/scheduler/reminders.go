package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/booking"
	"github.com/codr1/Gatehouse/internal/db"
	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
	"github.com/codr1/Gatehouse/internal/email"
)

const (
	ReminderJobName    = "booking_reminders"
	reminderJobTimeout = 2 * time.Minute
)

// ReminderRunner emails every member who has a booking tomorrow.
type ReminderRunner struct {
	database *db.DB
	ledger   *booking.Ledger
	notifier *email.Notifier
}

func NewReminderRunner(database *db.DB, ledger *booking.Ledger, notifier *email.Notifier) *ReminderRunner {
	return &ReminderRunner{database: database, ledger: ledger, notifier: notifier}
}

// Run sends one reminder per member per society and returns how many were sent.
func (r *ReminderRunner) Run(ctx context.Context) (int, error) {
	logger := log.Ctx(ctx)
	if !r.notifier.Enabled() {
		logger.Debug().Msg("Reminder job skipped: email client not configured")
		return 0, nil
	}

	date := r.ledger.Tomorrow()
	societies, err := r.database.Queries.ListActiveSocieties(ctx)
	if err != nil {
		return 0, fmt.Errorf("load societies for reminder job: %w", err)
	}

	sent := 0
	for _, society := range societies {
		societyLogger := logger.With().Str("society_id", society.ID).Logger()
		n, err := r.remindSociety(societyLogger.WithContext(ctx), society, date, &societyLogger)
		if err != nil {
			societyLogger.Error().Err(err).Msg("Failed to send society reminders")
			continue
		}
		sent += n
	}
	return sent, nil
}

func (r *ReminderRunner) remindSociety(ctx context.Context, society dbgen.Society, date string, logger *zerolog.Logger) (int, error) {
	bookings, err := r.ledger.ListOnDate(ctx, society.ID, date)
	if err != nil {
		return 0, err
	}
	if len(bookings) == 0 {
		return 0, nil
	}

	facilities, err := r.database.Queries.ListFacilities(ctx, society.ID)
	if err != nil {
		return 0, fmt.Errorf("load facilities: %w", err)
	}
	facilityNames := make(map[string]string, len(facilities))
	for _, f := range facilities {
		facilityNames[f.ID] = f.Name
	}

	var order []string
	byUser := make(map[string][]email.BookingDetails)
	for _, b := range bookings {
		if _, ok := byUser[b.UserID]; !ok {
			order = append(order, b.UserID)
		}
		byUser[b.UserID] = append(byUser[b.UserID], email.BookingDetails{
			SocietyName:  society.Name,
			FacilityName: facilityNames[b.FacilityID],
			Date:         b.BookingDate,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
		})
	}

	sent := 0
	for _, userID := range order {
		message := email.BuildBookingReminder(society.Name, byUser[userID])
		if err := r.notifier.Deliver(ctx, society.ID, userID, email.KindReminder, message); err != nil {
			if errors.Is(err, email.ErrNoRecipient) {
				logger.Debug().Str("user_id", userID).Msg("Reminder skipped: no email address")
				continue
			}
			logger.Error().Err(err).Str("user_id", userID).Msg("Failed to send reminder email")
			continue
		}
		sent++
	}
	return sent, nil
}

// RegisterReminderJobs registers the daily booking reminder job.
func RegisterReminderJobs(cronExpr string, runner *ReminderRunner) error {
	if runner == nil {
		return fmt.Errorf("reminder jobs require a runner")
	}

	jobLogger := log.With().
		Str("component", "booking_reminders_job").
		Str("job_name", ReminderJobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(ReminderJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		sent, err := runner.Run(ctx)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Booking reminder job failed")
			return
		}
		jobLogger.Info().Int("sent", sent).Msg("Booking reminder job finished")
	}, gocron.WithSingletonMode(gocron.LimitModeReschedule))
	if err != nil {
		return fmt.Errorf("add booking reminder job: %w", err)
	}

	jobLogger.Info().Msg("Booking reminder job registered")
	return nil
}
