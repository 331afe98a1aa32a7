package authz

import (
	"context"
	"errors"
	"testing"
)

func withSociety(role Role) context.Context {
	ctx := ContextWithUser(context.Background(), &AuthUser{ID: "user_1"})
	return ContextWithSociety(ctx, &SocietyContext{UserID: "user_1", SocietyID: "soc_1", Role: role})
}

func TestRequireSocietyUnauthenticated(t *testing.T) {
	_, err := RequireSociety(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireSocietyWithoutSelection(t *testing.T) {
	ctx := ContextWithUser(context.Background(), &AuthUser{ID: "user_1"})
	_, err := RequireSociety(ctx)
	if !errors.Is(err, ErrNoSociety) {
		t.Fatalf("expected ErrNoSociety, got %v", err)
	}
}

func TestRequireSocietyReturnsContext(t *testing.T) {
	society, err := RequireSociety(withSociety(RoleResident))
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if society.SocietyID != "soc_1" || society.Role != RoleResident {
		t.Fatalf("unexpected society context: %+v", society)
	}
}

func TestRequireManager(t *testing.T) {
	tests := []struct {
		role    Role
		allowed bool
	}{
		{RoleResident, false},
		{RoleWatchman, false},
		{RoleSecretary, true},
		{RoleAdmin, true},
	}
	for _, tt := range tests {
		_, err := RequireManager(withSociety(tt.role))
		if tt.allowed && err != nil {
			t.Fatalf("role %s: expected nil, got %v", tt.role, err)
		}
		if !tt.allowed && !errors.Is(err, ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", tt.role, err)
		}
	}
}

func TestParseRole(t *testing.T) {
	if role, ok := ParseRole("secretary"); !ok || role != RoleSecretary {
		t.Fatalf("expected secretary, got %q %v", role, ok)
	}
	if _, ok := ParseRole("owner"); ok {
		t.Fatal("expected owner to be rejected")
	}
}

func TestContextLookupsEmpty(t *testing.T) {
	if UserFromContext(context.Background()) != nil {
		t.Fatal("expected nil user for empty context")
	}
	if SocietyFromContext(context.Background()) != nil {
		t.Fatal("expected nil society for empty context")
	}
}
