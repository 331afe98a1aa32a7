// internal/api/roster/handlers.go
package roster

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/api/apiutil"
	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/community"
)

var (
	roster      *community.Roster
	handlerOnce sync.Once
)

type availabilityRequest struct {
	Status string `json:"status" validate:"required,oneof=available away"`
}

// InitHandlers wires the member roster.
func InitHandlers(r *community.Roster) {
	if r == nil {
		return
	}
	handlerOnce.Do(func() {
		roster = r
	})
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if roster == nil {
		log.Ctx(r.Context()).Error().Msg("Roster handlers not initialized")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error"})
		return false
	}
	return true
}

// GET /api/v1/roster/watchmen
func HandleWatchmen(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	list, err := roster.Watchmen(r.Context(), society.SocietyID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"members": list})
}

// GET /api/v1/roster/residents
// Gate staff use this to address visitor requests.
func HandleResidents(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireRole(r.Context(), authz.RoleWatchman, authz.RoleSecretary, authz.RoleAdmin)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	list, err := roster.Residents(r.Context(), society.SocietyID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"members": list})
}

// GET /api/v1/roster/me
func HandleMyAvailability(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	member, err := roster.Availability(r.Context(), apiutil.ActorFor(society))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"member": member})
}

// PUT /api/v1/roster/me
func HandleSetAvailability(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireRole(r.Context(), authz.RoleWatchman)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req availabilityRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if err := apiutil.Validate(req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	member, err := roster.SetAvailability(r.Context(), apiutil.ActorFor(society), req.Status)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"member": member})
}
