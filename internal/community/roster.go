package community

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Gatehouse/internal/db"
	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
)

const (
	Available = "available"
	Away      = "away"
)

type RosterMember struct {
	UserID             string `json:"user_id"`
	Role               string `json:"role"`
	AvailabilityStatus string `json:"availability_status"`
}

// Roster answers who is on the gate and who lives where.
type Roster struct {
	db *db.DB
}

func NewRoster(database *db.DB) *Roster {
	return &Roster{db: database}
}

// SetAvailability records whether a watchman is on duty.
func (r *Roster) SetAvailability(ctx context.Context, actor Actor, status string) (RosterMember, error) {
	if err := actor.validate(); err != nil {
		return RosterMember{}, err
	}
	if !actor.IsWatchman() {
		return RosterMember{}, NotAuthorizedError{Action: "set duty availability"}
	}
	if status != Available && status != Away {
		return RosterMember{}, ValidationError{Field: "status", Reason: "status must be available or away"}
	}

	affected, err := r.db.Queries.SetAvailabilityStatus(ctx, dbgen.SetAvailabilityStatusParams{
		AvailabilityStatus: status,
		SocietyID:          actor.SocietyID,
		UserID:             actor.UserID,
	})
	if err != nil {
		return RosterMember{}, fmt.Errorf("set availability: %w", err)
	}
	if affected == 0 {
		return RosterMember{}, NotFoundError{Resource: "membership", ID: actor.UserID}
	}

	log.Ctx(ctx).Info().
		Str("society_id", actor.SocietyID).
		Str("user_id", actor.UserID).
		Str("availability_status", status).
		Msg("Availability changed")
	return RosterMember{UserID: actor.UserID, Role: actor.Role, AvailabilityStatus: status}, nil
}

// Availability returns the actor's own roster entry.
func (r *Roster) Availability(ctx context.Context, actor Actor) (RosterMember, error) {
	row, err := r.db.Queries.GetActiveMembership(ctx, dbgen.GetActiveMembershipParams{
		SocietyID: actor.SocietyID,
		UserID:    actor.UserID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RosterMember{}, NotFoundError{Resource: "membership", ID: actor.UserID}
		}
		return RosterMember{}, fmt.Errorf("get membership: %w", err)
	}
	return rosterMemberFromRow(row), nil
}

// Watchmen returns the society's active watchmen with their duty status.
func (r *Roster) Watchmen(ctx context.Context, societyID string) ([]RosterMember, error) {
	return r.membersByRole(ctx, societyID, RoleWatchman)
}

// Residents returns the society's active residents, for addressing visitor
// requests.
func (r *Roster) Residents(ctx context.Context, societyID string) ([]RosterMember, error) {
	return r.membersByRole(ctx, societyID, RoleResident)
}

func (r *Roster) membersByRole(ctx context.Context, societyID, role string) ([]RosterMember, error) {
	rows, err := r.db.Queries.ListActiveMembersByRole(ctx, dbgen.ListActiveMembersByRoleParams{SocietyID: societyID, Role: role})
	if err != nil {
		return nil, fmt.Errorf("list %s members: %w", role, err)
	}
	out := make([]RosterMember, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterMemberFromRow(row))
	}
	return out, nil
}

func rosterMemberFromRow(row dbgen.SocietyMember) RosterMember {
	return RosterMember{
		UserID:             row.UserID,
		Role:               row.Role,
		AvailabilityStatus: row.AvailabilityStatus,
	}
}
