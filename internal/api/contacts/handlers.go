// internal/api/contacts/handlers.go
package contacts

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/api/apiutil"
	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/community"
)

var (
	directory   *community.Directory
	handlerOnce sync.Once
)

type contactRequest struct {
	Name        string `json:"name" validate:"notblank,max=120"`
	Phone       string `json:"phone" validate:"notblank,max=32"`
	Category    string `json:"category" validate:"omitempty,oneof=police fire hospital other"`
	Description string `json:"description" validate:"max=300"`
}

// InitHandlers wires the emergency contact directory.
func InitHandlers(d *community.Directory) {
	if d == nil {
		return
	}
	handlerOnce.Do(func() {
		directory = d
	})
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if directory == nil {
		log.Ctx(r.Context()).Error().Msg("Emergency contact handlers not initialized")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error"})
		return false
	}
	return true
}

// GET /api/v1/emergency-contacts
func HandleContactList(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	list, err := directory.List(r.Context(), society.SocietyID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"contacts": list})
}

// POST /api/v1/emergency-contacts
func HandleContactCreate(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireManager(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req contactRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if err := apiutil.Validate(req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	contact, err := directory.Add(r.Context(), apiutil.ActorFor(society), community.ContactParams{
		Name:        req.Name,
		Phone:       req.Phone,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"contact": contact})
}

// DELETE /api/v1/emergency-contacts/{id}
func HandleContactDelete(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireManager(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	contactID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := directory.Remove(r.Context(), apiutil.ActorFor(society), contactID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
