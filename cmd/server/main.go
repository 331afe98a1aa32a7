// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/Gatehouse/internal/api/auth"
	"github.com/codr1/Gatehouse/internal/api/bookings"
	"github.com/codr1/Gatehouse/internal/api/complaints"
	"github.com/codr1/Gatehouse/internal/api/contacts"
	"github.com/codr1/Gatehouse/internal/api/facilities"
	"github.com/codr1/Gatehouse/internal/api/gatelog"
	"github.com/codr1/Gatehouse/internal/api/notices"
	"github.com/codr1/Gatehouse/internal/api/roster"
	"github.com/codr1/Gatehouse/internal/api/societies"
	"github.com/codr1/Gatehouse/internal/api/visitors"
	"github.com/codr1/Gatehouse/internal/booking"
	"github.com/codr1/Gatehouse/internal/community"
	"github.com/codr1/Gatehouse/internal/config"
	"github.com/codr1/Gatehouse/internal/db"
	"github.com/codr1/Gatehouse/internal/email"
	"github.com/codr1/Gatehouse/internal/prefs"
	"github.com/codr1/Gatehouse/internal/ratelimit"
	"github.com/codr1/Gatehouse/internal/scheduler"
)

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := prefs.NewFromConfig(ctx, cfg, database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Preferences.Driver).Msg("Failed to open preference store")
	}

	var verify auth.TokenVerifier
	if cfg.Auth.ClerkEnabled {
		auth.InitClerk(cfg.Auth.ClerkSecretKey)
		verify = auth.VerifyClerkToken
	}
	allowDevHeader := cfg.App.Environment == "development"
	if allowDevHeader {
		log.Warn().Str("header", auth.DevUserHeader).Msg("Development identity header enabled")
	}
	resolver := auth.NewResolver(verify, allowDevHeader)

	notifier, err := newNotifier(ctx, cfg, database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure email")
	}

	ledger := booking.NewLedger(database, booking.WithLocation(cfg.Location()))
	registry := booking.NewRegistry(database)
	limiter := ratelimit.New(&ratelimit.Config{
		MaxAttempts: cfg.RateLimit.BookingAttemptsPerMinute,
		Window:      time.Minute,
	})
	defer limiter.Close()

	facilities.InitHandlers(registry, ledger)
	bookings.InitHandlers(bookings.Dependencies{
		Queries:  database.Queries,
		Ledger:   ledger,
		Registry: registry,
		Notifier: notifier,
		Limiter:  limiter,
	})
	societies.InitHandlers(database, store)
	visitors.InitHandlers(community.NewVisitorDesk(database))
	gatelog.InitHandlers(community.NewGateLog(database))
	notices.InitHandlers(community.NewNoticeboard(database))
	complaints.InitHandlers(community.NewComplaintBox(database))
	contacts.InitHandlers(community.NewDirectory(database, cfg.App.PhoneRegion))
	roster.InitHandlers(community.NewRoster(database))

	if err := startScheduler(cfg, database, ledger, notifier); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
	}()

	server := newServer(cfg, database, store, resolver)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

// newNotifier returns a notifier backed by SES when email is configured, and
// a disabled one otherwise.
func newNotifier(ctx context.Context, cfg *config.Config, database *db.DB) (*email.Notifier, error) {
	if !cfg.EmailEnabled() {
		log.Info().Msg("Email not configured; booking emails disabled")
		return email.NewNotifier(database.Queries, nil), nil
	}

	client, err := email.NewSESClient(ctx, email.SESConfig{
		Region:          cfg.Email.Region,
		Sender:          cfg.Email.Sender,
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("region", cfg.Email.Region).Str("sender", cfg.Email.Sender).Msg("SES email enabled")
	return email.NewNotifier(database.Queries, client), nil
}

func startScheduler(cfg *config.Config, database *db.DB, ledger *booking.Ledger, notifier *email.Notifier) error {
	if err := scheduler.Init(cfg.Location()); err != nil {
		return err
	}
	runner := scheduler.NewReminderRunner(database, ledger, notifier)
	if err := scheduler.RegisterReminderJobs(cfg.Scheduler.ReminderCron, runner); err != nil {
		return err
	}
	return scheduler.Start()
}
