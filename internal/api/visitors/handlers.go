// internal/api/visitors/handlers.go
package visitors

import (
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/api/apiutil"
	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/community"
)

var (
	desk        *community.VisitorDesk
	handlerOnce sync.Once
)

type registerVisitorRequest struct {
	VisitorName string `json:"visitor_name" validate:"notblank,max=120"`
	Purpose     string `json:"purpose" validate:"notblank,max=200"`
	FlatNumber  string `json:"flat_number" validate:"notblank,max=20"`
	ResidentID  string `json:"resident_id" validate:"max=200"`
}

type decisionRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// InitHandlers wires the visitor desk.
func InitHandlers(d *community.VisitorDesk) {
	if d == nil {
		return
	}
	handlerOnce.Do(func() {
		desk = d
	})
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if desk == nil {
		log.Ctx(r.Context()).Error().Msg("Visitor handlers not initialized")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error"})
		return false
	}
	return true
}

// GET /api/v1/visitors?status=pending
func HandleVisitorList(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	list, err := desk.List(r.Context(), society.SocietyID, status)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"visitors": list})
}

// GET /api/v1/visitors/{id}
func HandleVisitorGet(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	visitorID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	visitor, err := desk.Get(r.Context(), society.SocietyID, visitorID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"visitor": visitor})
}

// POST /api/v1/visitors
func HandleVisitorRegister(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireRole(r.Context(), authz.RoleWatchman, authz.RoleSecretary, authz.RoleAdmin)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req registerVisitorRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if err := apiutil.Validate(req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	visitor, err := desk.Register(r.Context(), apiutil.ActorFor(society), community.VisitorParams{
		VisitorName: req.VisitorName,
		Purpose:     req.Purpose,
		FlatNumber:  req.FlatNumber,
		ResidentID:  req.ResidentID,
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"visitor": visitor})
}

// POST /api/v1/visitors/{id}/decision
func HandleVisitorDecision(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	visitorID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req decisionRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if err := apiutil.Validate(req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	visitor, err := desk.Decide(r.Context(), apiutil.ActorFor(society), visitorID, req.Status)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"visitor": visitor})
}
