// internal/api/societies/handlers.go
package societies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/api/apiutil"
	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/db"
	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
	"github.com/codr1/Gatehouse/internal/prefs"
)

var (
	database    *db.DB
	store       prefs.Store
	handlerOnce sync.Once
)

type createSocietyRequest struct {
	Name    string `json:"name" validate:"notblank,max=200"`
	Address string `json:"address" validate:"max=500"`
	City    string `json:"city" validate:"max=100"`
	State   string `json:"state" validate:"max=100"`
	Pincode string `json:"pincode" validate:"max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type addMemberRequest struct {
	UserID string `json:"user_id" validate:"notblank,max=200"`
	Role   string `json:"role" validate:"required,oneof=resident watchman secretary admin"`
	Status string `json:"status" validate:"omitempty,oneof=active pending inactive"`
	Email  string `json:"email" validate:"omitempty,email"`
}

type memberResponse struct {
	SocietyID string `json:"society_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Email     string `json:"email,omitempty"`
}

type sessionSociety struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	CanManage bool   `json:"can_manage"`
}

type sessionResponse struct {
	UserID  string          `json:"user_id"`
	Source  string          `json:"source"`
	Society *sessionSociety `json:"society"`
}

// InitHandlers wires the database and the preference store holding each
// user's selected society.
func InitHandlers(d *db.DB, s prefs.Store) {
	if d == nil || s == nil {
		return
	}
	handlerOnce.Do(func() {
		database = d
		store = s
	})
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if database == nil || store == nil {
		log.Ctx(r.Context()).Error().Msg("Society handlers not initialized")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Internal Server Error"})
		return false
	}
	return true
}

// GET /api/v1/societies
func HandleSocietyList(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	user, err := authz.RequireUser(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	rows, err := database.Queries.ListActiveSocietiesForUser(r.Context(), user.ID)
	if err != nil {
		apiutil.WriteError(w, r, fmt.Errorf("list societies: %w", err))
		return
	}
	if rows == nil {
		rows = []dbgen.Society{}
	}

	selected := ""
	if society := authz.SocietyFromContext(r.Context()); society != nil {
		selected = society.SocietyID
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"societies":           rows,
		"selected_society_id": selected,
	})
}

// POST /api/v1/societies
func HandleSocietyCreate(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx := r.Context()
	user, err := authz.RequireUser(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req createSocietyRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if err := apiutil.Validate(req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	societyID := uuid.NewString()
	var created dbgen.Society
	err = database.RunInTx(ctx, func(txdb *db.DB) error {
		if err := txdb.Queries.CreateSociety(ctx, dbgen.CreateSocietyParams{
			ID:      societyID,
			Name:    strings.TrimSpace(req.Name),
			Address: strings.TrimSpace(req.Address),
			City:    strings.TrimSpace(req.City),
			State:   strings.TrimSpace(req.State),
			Pincode: strings.TrimSpace(req.Pincode),
		}); err != nil {
			return fmt.Errorf("create society: %w", err)
		}
		if err := txdb.Queries.UpsertMember(ctx, dbgen.UpsertMemberParams{
			ID:        uuid.NewString(),
			SocietyID: societyID,
			UserID:    user.ID,
			Role:      string(authz.RoleSecretary),
			Status:    "active",
			Email:     nullString(req.Email),
		}); err != nil {
			return fmt.Errorf("add founding secretary: %w", err)
		}
		row, err := txdb.Queries.GetSocietyByID(ctx, societyID)
		if err != nil {
			return fmt.Errorf("load society: %w", err)
		}
		created = row
		return nil
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	log.Ctx(ctx).Info().Str("society_id", created.ID).Msg("Society created")
	_ = apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"society": created})
}

// POST /api/v1/societies/{id}/select
func HandleSocietySelect(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx := r.Context()
	user, err := authz.RequireUser(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	societyID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	society, err := authz.LoadSocietyContext(ctx, database.Queries, user.ID, societyID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := store.Set(ctx, user.ID, prefs.KeySelectedSociety, society.SocietyID); err != nil {
		apiutil.WriteError(w, r, fmt.Errorf("save society selection: %w", err))
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, sessionSocietyFor(society))
}

// DELETE /api/v1/societies/selection
func HandleSelectionClear(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	user, err := authz.RequireUser(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := store.Delete(r.Context(), user.ID, prefs.KeySelectedSociety); err != nil {
		apiutil.WriteError(w, r, fmt.Errorf("clear society selection: %w", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/societies/{id}/members
func HandleMemberAdd(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx := r.Context()
	user, err := authz.RequireUser(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	societyID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	manager, err := authz.LoadSocietyContext(ctx, database.Queries, user.ID, societyID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if !manager.CanManage() {
		apiutil.WriteError(w, r, authz.ErrForbidden)
		return
	}

	var req addMemberRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if err := apiutil.Validate(req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	role, _ := authz.ParseRole(req.Role)
	if role == authz.RoleAdmin && manager.Role != authz.RoleAdmin {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusForbidden, Message: "Only admins can grant the admin role"})
		return
	}
	status := req.Status
	if status == "" {
		status = "active"
	}

	member, err := upsertMember(ctx, manager.Role, dbgen.UpsertMemberParams{
		ID:        uuid.NewString(),
		SocietyID: manager.SocietyID,
		UserID:    strings.TrimSpace(req.UserID),
		Role:      string(role),
		Status:    status,
		Email:     nullString(req.Email),
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	log.Ctx(ctx).Info().
		Str("member_user_id", member.UserID).
		Str("role", member.Role).
		Str("status", member.Status).
		Msg("Society member saved")
	_ = apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"member": member})
}

// GET /api/v1/session
func HandleSession(w http.ResponseWriter, r *http.Request) {
	user, err := authz.RequireUser(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	resp := sessionResponse{UserID: user.ID, Source: user.Source}
	if society := authz.SocietyFromContext(r.Context()); society != nil {
		s := sessionSocietyFor(society)
		resp.Society = &s
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, resp)
}

// errAdminProtected is returned when a non-admin tries to rewrite an admin's membership.
var errAdminProtected = apiutil.HandlerError{Status: http.StatusForbidden, Message: "Only admins can modify an admin membership"}

func upsertMember(ctx context.Context, callerRole authz.Role, params dbgen.UpsertMemberParams) (memberResponse, error) {
	var out memberResponse
	err := database.RunInTx(ctx, func(txdb *db.DB) error {
		existing, err := txdb.Queries.GetMembership(ctx, dbgen.GetMembershipParams{
			SocietyID: params.SocietyID,
			UserID:    params.UserID,
		})
		switch {
		case err == nil:
			if existing.Role == string(authz.RoleAdmin) && callerRole != authz.RoleAdmin {
				return errAdminProtected
			}
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("load existing member: %w", err)
		}
		if err := txdb.Queries.UpsertMember(ctx, params); err != nil {
			return fmt.Errorf("upsert member: %w", err)
		}
		row, err := txdb.Queries.GetMembership(ctx, dbgen.GetMembershipParams{
			SocietyID: params.SocietyID,
			UserID:    params.UserID,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("member missing after upsert: %w", err)
			}
			return fmt.Errorf("load member: %w", err)
		}
		out = memberResponse{
			SocietyID: row.SocietyID,
			UserID:    row.UserID,
			Role:      row.Role,
			Status:    row.Status,
			Email:     row.Email.String,
		}
		return nil
	})
	return out, err
}

func sessionSocietyFor(society *authz.SocietyContext) sessionSociety {
	return sessionSociety{
		ID:        society.SocietyID,
		Role:      string(society.Role),
		CanManage: society.CanManage(),
	}
}

func nullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}
