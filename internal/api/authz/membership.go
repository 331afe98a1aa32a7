package authz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
)

// LoadSocietyContext builds the society context for userID in societyID. The
// user needs an active membership in an active society, otherwise
// ErrForbidden.
func LoadSocietyContext(ctx context.Context, q *dbgen.Queries, userID, societyID string) (*SocietyContext, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if societyID == "" {
		return nil, ErrNoSociety
	}

	society, err := q.GetSocietyByID(ctx, societyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("load society: %w", err)
	}
	if society.Status != "active" {
		return nil, ErrForbidden
	}

	member, err := q.GetActiveMembership(ctx, dbgen.GetActiveMembershipParams{SocietyID: societyID, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("load membership: %w", err)
	}

	role, ok := ParseRole(member.Role)
	if !ok {
		return nil, fmt.Errorf("membership has unknown role %q", member.Role)
	}
	return &SocietyContext{UserID: userID, SocietyID: societyID, Role: role}, nil
}
