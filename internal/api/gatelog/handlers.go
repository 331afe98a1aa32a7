// internal/api/gatelog/handlers.go
package gatelog

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/api/apiutil"
	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/community"
)

var (
	gate        *community.GateLog
	handlerOnce sync.Once
)

type entryRequest struct {
	VisitorName   string `json:"visitor_name" validate:"max=120"`
	FlatNumber    string `json:"flat_number" validate:"max=20"`
	Purpose       string `json:"purpose" validate:"max=200"`
	VehicleNumber string `json:"vehicle_number" validate:"max=20"`
	VehicleType   string `json:"vehicle_type" validate:"omitempty,oneof=car bike auto other"`
	SecurityNotes string `json:"security_notes" validate:"max=500"`
	VisitorID     string `json:"visitor_id" validate:"max=200"`
}

// InitHandlers wires the gate log.
func InitHandlers(g *community.GateLog) {
	if g == nil {
		return
	}
	handlerOnce.Do(func() {
		gate = g
	})
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if gate == nil {
		log.Ctx(r.Context()).Error().Msg("Gate log handlers not initialized")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error"})
		return false
	}
	return true
}

func requireGateStaff(w http.ResponseWriter, r *http.Request) (*authz.SocietyContext, bool) {
	society, err := authz.RequireRole(r.Context(), authz.RoleWatchman, authz.RoleSecretary, authz.RoleAdmin)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return nil, false
	}
	return society, true
}

// GET /api/v1/gate-log?inside=true
func HandleGateLogList(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, ok := requireGateStaff(w, r)
	if !ok {
		return
	}
	insideOnly, err := apiutil.BoolFromQuery(r, "inside")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	entries, err := gate.List(r.Context(), society.SocietyID, insideOnly)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// POST /api/v1/gate-log
func HandleGateEntry(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, ok := requireGateStaff(w, r)
	if !ok {
		return
	}

	var req entryRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if err := apiutil.Validate(req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	entry, err := gate.RecordEntry(r.Context(), apiutil.ActorFor(society), community.EntryParams{
		VisitorName:   req.VisitorName,
		FlatNumber:    req.FlatNumber,
		Purpose:       req.Purpose,
		VehicleNumber: req.VehicleNumber,
		VehicleType:   req.VehicleType,
		SecurityNotes: req.SecurityNotes,
		VisitorID:     req.VisitorID,
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

// POST /api/v1/gate-log/{id}/exit
func HandleGateExit(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, ok := requireGateStaff(w, r)
	if !ok {
		return
	}
	entryID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	entry, err := gate.RecordExit(r.Context(), apiutil.ActorFor(society), entryID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"entry": entry})
}
