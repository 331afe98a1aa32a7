// internal/api/complaints/handlers.go
package complaints

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/api/apiutil"
	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/community"
)

var (
	box         *community.ComplaintBox
	handlerOnce sync.Once
)

type fileComplaintRequest struct {
	Category    string `json:"category" validate:"required,oneof=maintenance security cleanliness noise parking water_supply electricity common_areas other"`
	Description string `json:"description" validate:"notblank,max=2000"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress resolved"`
}

// InitHandlers wires the complaint box.
func InitHandlers(b *community.ComplaintBox) {
	if b == nil {
		return
	}
	handlerOnce.Do(func() {
		box = b
	})
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if box == nil {
		log.Ctx(r.Context()).Error().Msg("Complaint handlers not initialized")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error"})
		return false
	}
	return true
}

// GET /api/v1/complaints
// Managers see every complaint of the society, others only their own.
func HandleComplaintList(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	list, err := box.List(r.Context(), apiutil.ActorFor(society))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"complaints": list})
}

// GET /api/v1/complaints/{id}
func HandleComplaintGet(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	complaintID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	complaint, err := box.Get(r.Context(), apiutil.ActorFor(society), complaintID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"complaint": complaint})
}

// POST /api/v1/complaints
func HandleComplaintCreate(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req fileComplaintRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if err := apiutil.Validate(req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	complaint, err := box.File(r.Context(), apiutil.ActorFor(society), req.Category, req.Description)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"complaint": complaint})
}

// PATCH /api/v1/complaints/{id}
func HandleComplaintStatus(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireManager(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	complaintID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req statusRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if err := apiutil.Validate(req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	complaint, err := box.SetStatus(r.Context(), apiutil.ActorFor(society), complaintID, req.Status)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"complaint": complaint})
}
