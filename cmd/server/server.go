// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codr1/Gatehouse/internal/api"
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
	"github.com/codr1/Gatehouse/internal/config"
	"github.com/codr1/Gatehouse/internal/db"
	"github.com/codr1/Gatehouse/internal/prefs"
)

func newServer(cfg *config.Config, database *db.DB, store prefs.Store, resolver *auth.Resolver) *http.Server {
	router := http.NewServeMux()
	registerRoutes(router, cfg)

	// Applied innermost first: metrics must see the mux's matched pattern.
	handler := api.ChainMiddleware(
		router,
		api.WithMetrics,
		api.WithSociety(database.Queries, store),
		api.WithIdentity(resolver),
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Session and society selection
	mux.HandleFunc("GET /api/v1/session", societies.HandleSession)
	mux.HandleFunc("GET /api/v1/societies", societies.HandleSocietyList)
	mux.HandleFunc("POST /api/v1/societies", societies.HandleSocietyCreate)
	mux.HandleFunc("POST /api/v1/societies/{id}/select", societies.HandleSocietySelect)
	mux.HandleFunc("DELETE /api/v1/societies/selection", societies.HandleSelectionClear)
	mux.HandleFunc("POST /api/v1/societies/{id}/members", societies.HandleMemberAdd)

	// Facility routes
	mux.HandleFunc("GET /api/v1/facilities", facilities.HandleFacilityList)
	mux.HandleFunc("POST /api/v1/facilities", facilities.HandleFacilityCreate)
	mux.HandleFunc("GET /api/v1/facilities/{id}/availability", facilities.HandleFacilityAvailability)
	mux.HandleFunc("GET /api/v1/facilities/{id}/bookings", facilities.HandleFacilityBookings)

	// Booking routes
	mux.HandleFunc("GET /api/v1/bookings", bookings.HandleBookingList)
	mux.HandleFunc("POST /api/v1/bookings", bookings.HandleBookingCreate)
	mux.HandleFunc("GET /api/v1/bookings/mine", bookings.HandleMyBookings)
	mux.HandleFunc("DELETE /api/v1/bookings/{id}", bookings.HandleBookingCancel)

	// Visitor requests and gate log
	mux.HandleFunc("GET /api/v1/visitors", visitors.HandleVisitorList)
	mux.HandleFunc("POST /api/v1/visitors", visitors.HandleVisitorRegister)
	mux.HandleFunc("GET /api/v1/visitors/{id}", visitors.HandleVisitorGet)
	mux.HandleFunc("POST /api/v1/visitors/{id}/decision", visitors.HandleVisitorDecision)
	mux.HandleFunc("GET /api/v1/gate-log", gatelog.HandleGateLogList)
	mux.HandleFunc("POST /api/v1/gate-log", gatelog.HandleGateEntry)
	mux.HandleFunc("POST /api/v1/gate-log/{id}/exit", gatelog.HandleGateExit)

	// Noticeboard and complaints
	mux.HandleFunc("GET /api/v1/notices", notices.HandleNoticeList)
	mux.HandleFunc("POST /api/v1/notices", notices.HandleNoticeCreate)
	mux.HandleFunc("PUT /api/v1/notices/{id}", notices.HandleNoticeUpdate)
	mux.HandleFunc("DELETE /api/v1/notices/{id}", notices.HandleNoticeDelete)
	mux.HandleFunc("GET /api/v1/complaints", complaints.HandleComplaintList)
	mux.HandleFunc("POST /api/v1/complaints", complaints.HandleComplaintCreate)
	mux.HandleFunc("GET /api/v1/complaints/{id}", complaints.HandleComplaintGet)
	mux.HandleFunc("PATCH /api/v1/complaints/{id}", complaints.HandleComplaintStatus)

	// Emergency contacts and roster
	mux.HandleFunc("GET /api/v1/emergency-contacts", contacts.HandleContactList)
	mux.HandleFunc("POST /api/v1/emergency-contacts", contacts.HandleContactCreate)
	mux.HandleFunc("DELETE /api/v1/emergency-contacts/{id}", contacts.HandleContactDelete)
	mux.HandleFunc("GET /api/v1/roster/watchmen", roster.HandleWatchmen)
	mux.HandleFunc("GET /api/v1/roster/residents", roster.HandleResidents)
	mux.HandleFunc("GET /api/v1/roster/me", roster.HandleMyAvailability)
	mux.HandleFunc("PUT /api/v1/roster/me", roster.HandleSetAvailability)
}
