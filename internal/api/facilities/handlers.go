// internal/api/facilities/handlers.go
package facilities

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/api/apiutil"
	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/booking"
)

var (
	registry    *booking.Registry
	ledger      *booking.Ledger
	handlerOnce sync.Once
)

type createFacilityRequest struct {
	Name        string `json:"name" validate:"notblank,max=120"`
	Description string `json:"description" validate:"max=500"`
}

type availabilityResponse struct {
	FacilityID string               `json:"facility_id"`
	Date       string               `json:"date"`
	Slots      []booking.SlotStatus `json:"slots"`
}

// InitHandlers wires the facility registry and booking ledger.
func InitHandlers(r *booking.Registry, l *booking.Ledger) {
	if r == nil || l == nil {
		return
	}
	handlerOnce.Do(func() {
		registry = r
		ledger = l
	})
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if registry == nil || ledger == nil {
		log.Ctx(r.Context()).Error().Msg("Facility handlers not initialized")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error"})
		return false
	}
	return true
}

// GET /api/v1/facilities
func HandleFacilityList(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	list, err := registry.ListFacilities(r.Context(), society.SocietyID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"facilities": list})
}

// POST /api/v1/facilities
func HandleFacilityCreate(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireManager(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req createFacilityRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if err := apiutil.Validate(req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	created, err := registry.CreateFacility(r.Context(), society.SocietyID, society.UserID, req.Name, req.Description)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"facility": created})
}

// GET /api/v1/facilities/{id}/availability?date=YYYY-MM-DD
func HandleFacilityAvailability(w http.ResponseWriter, r *http.Request) {
	facility, date, bookings, ok := loadFacilityDay(w, r)
	if !ok {
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, availabilityResponse{
		FacilityID: facility.ID,
		Date:       date,
		Slots:      booking.SlotAvailability(bookings, facility.ID, date),
	})
}

// GET /api/v1/facilities/{id}/bookings?date=YYYY-MM-DD
func HandleFacilityBookings(w http.ResponseWriter, r *http.Request) {
	facility, date, bookings, ok := loadFacilityDay(w, r)
	if !ok {
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"bookings": booking.BookingsForFacilityOnDate(bookings, facility.ID, date),
	})
}

func loadFacilityDay(w http.ResponseWriter, r *http.Request) (booking.Facility, string, []booking.Booking, bool) {
	if !ready(w, r) {
		return booking.Facility{}, "", nil, false
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return booking.Facility{}, "", nil, false
	}
	facilityID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return booking.Facility{}, "", nil, false
	}
	date, err := apiutil.DateFromQuery(r, "date")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return booking.Facility{}, "", nil, false
	}

	facility, err := registry.GetFacility(r.Context(), society.SocietyID, facilityID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return booking.Facility{}, "", nil, false
	}
	bookings, err := ledger.ListOnDate(r.Context(), society.SocietyID, date)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return booking.Facility{}, "", nil, false
	}
	return facility, date, bookings, true
}
