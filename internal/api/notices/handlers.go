// internal/api/notices/handlers.go
package notices

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/api/apiutil"
	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/community"
)

var (
	board       *community.Noticeboard
	handlerOnce sync.Once
)

type noticeRequest struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"notblank,max=5000"`
	Link        string `json:"link" validate:"omitempty,url,max=500"`
}

func (req noticeRequest) params() community.NoticeParams {
	return community.NoticeParams{Title: req.Title, Description: req.Description, Link: req.Link}
}

// InitHandlers wires the noticeboard.
func InitHandlers(b *community.Noticeboard) {
	if b == nil {
		return
	}
	handlerOnce.Do(func() {
		board = b
	})
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if board == nil {
		log.Ctx(r.Context()).Error().Msg("Notice handlers not initialized")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error"})
		return false
	}
	return true
}

// GET /api/v1/notices
func HandleNoticeList(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireSociety(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	list, err := board.List(r.Context(), society.SocietyID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"notices": list})
}

// POST /api/v1/notices
func HandleNoticeCreate(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireManager(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	req, ok := decodeNotice(w, r)
	if !ok {
		return
	}

	notice, err := board.Post(r.Context(), apiutil.ActorFor(society), req.params())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"notice": notice})
}

// PUT /api/v1/notices/{id}
func HandleNoticeUpdate(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireManager(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	noticeID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	req, ok := decodeNotice(w, r)
	if !ok {
		return
	}

	notice, err := board.Update(r.Context(), apiutil.ActorFor(society), noticeID, req.params())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"notice": notice})
}

// DELETE /api/v1/notices/{id}
func HandleNoticeDelete(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	society, err := authz.RequireManager(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	noticeID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := board.Remove(r.Context(), apiutil.ActorFor(society), noticeID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeNotice(w http.ResponseWriter, r *http.Request) (noticeRequest, bool) {
	var req noticeRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return req, false
	}
	if err := apiutil.Validate(req); err != nil {
		apiutil.WriteError(w, r, err)
		return req, false
	}
	return req, true
}
