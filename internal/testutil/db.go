package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/codr1/Gatehouse/internal/db"
	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// SeedSociety inserts an active society and returns its id.
func SeedSociety(t *testing.T, database *db.DB, name string) string {
	t.Helper()

	id := uuid.NewString()
	if err := database.Queries.CreateSociety(context.Background(), dbgen.CreateSocietyParams{
		ID:   id,
		Name: name,
	}); err != nil {
		t.Fatalf("seed society %q: %v", name, err)
	}
	return id
}

// SeedMember inserts an active membership for userID with role.
func SeedMember(t *testing.T, database *db.DB, societyID, userID, role string) {
	t.Helper()
	SeedMemberStatus(t, database, societyID, userID, role, "active")
}

// SeedMemberStatus inserts or updates a membership with an explicit status.
// The member's email is userID@example.com.
func SeedMemberStatus(t *testing.T, database *db.DB, societyID, userID, role, status string) {
	t.Helper()

	if err := database.Queries.UpsertMember(context.Background(), dbgen.UpsertMemberParams{
		ID:        uuid.NewString(),
		SocietyID: societyID,
		UserID:    userID,
		Role:      role,
		Status:    status,
		Email:     sql.NullString{String: userID + "@example.com", Valid: true},
	}); err != nil {
		t.Fatalf("seed member %q: %v", userID, err)
	}
}

// SeedFacility inserts a facility and returns its id.
func SeedFacility(t *testing.T, database *db.DB, societyID, name string) string {
	t.Helper()

	id := uuid.NewString()
	if err := database.Queries.CreateFacility(context.Background(), dbgen.CreateFacilityParams{
		ID:        id,
		SocietyID: societyID,
		Name:      name,
		CreatedBy: "seed",
	}); err != nil {
		t.Fatalf("seed facility %q: %v", name, err)
	}
	return id
}
