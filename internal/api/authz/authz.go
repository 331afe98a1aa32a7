package authz

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNoSociety       = errors.New("no society selected")
)

type Role string

const (
	RoleResident  Role = "resident"
	RoleWatchman  Role = "watchman"
	RoleSecretary Role = "secretary"
	RoleAdmin     Role = "admin"
)

// ParseRole reports whether raw names a known member role.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleResident, RoleWatchman, RoleSecretary, RoleAdmin:
		return Role(raw), true
	}
	return "", false
}

// AuthUser is the identity resolved for the request. ID is the identity
// provider's opaque user id.
type AuthUser struct {
	ID     string
	Source string
}

// SocietyContext is the society a request acts in and the caller's role
// there. It is resolved once per request and handed to every operation.
type SocietyContext struct {
	UserID    string
	SocietyID string
	Role      Role
}

// CanManage reports whether the role may administer the society.
func (s SocietyContext) CanManage() bool {
	return s.Role == RoleSecretary || s.Role == RoleAdmin
}

type userContextKey struct{}
type societyContextKey struct{}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the AuthUser stored in ctx.
// It returns nil if ctx is nil, if no user is stored, or if the stored value has a different type.
func UserFromContext(ctx context.Context) *AuthUser {
	if ctx == nil {
		return nil
	}
	user, ok := ctx.Value(userContextKey{}).(*AuthUser)
	if !ok {
		return nil
	}
	return user
}

func ContextWithSociety(ctx context.Context, society *SocietyContext) context.Context {
	return context.WithValue(ctx, societyContextKey{}, society)
}

func SocietyFromContext(ctx context.Context) *SocietyContext {
	if ctx == nil {
		return nil
	}
	society, ok := ctx.Value(societyContextKey{}).(*SocietyContext)
	if !ok {
		return nil
	}
	return society
}

func RequireUser(ctx context.Context) (*AuthUser, error) {
	user := UserFromContext(ctx)
	if user == nil || user.ID == "" {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// RequireSociety returns the caller's society context. A signed-in user
// without a selected society gets ErrNoSociety.
func RequireSociety(ctx context.Context) (*SocietyContext, error) {
	if _, err := RequireUser(ctx); err != nil {
		return nil, err
	}
	society := SocietyFromContext(ctx)
	if society == nil || society.SocietyID == "" {
		return nil, ErrNoSociety
	}
	return society, nil
}

// RequireRole is RequireSociety plus a role check.
func RequireRole(ctx context.Context, roles ...Role) (*SocietyContext, error) {
	society, err := RequireSociety(ctx)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if society.Role == role {
			return society, nil
		}
	}
	return nil, ErrForbidden
}

// RequireManager allows secretaries and admins.
func RequireManager(ctx context.Context) (*SocietyContext, error) {
	return RequireRole(ctx, RoleSecretary, RoleAdmin)
}
