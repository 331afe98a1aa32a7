package community

import (
	"sync"
	"testing"
	"time"

	"github.com/codr1/Gatehouse/internal/db"
	"github.com/codr1/Gatehouse/internal/testutil"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	db        *db.DB
	societyID string
}

// newFixture seeds one society with a secretary, a watchman and two residents.
func newFixture(t *testing.T) fixture {
	t.Helper()

	database := testutil.NewTestDB(t)
	societyID := testutil.SeedSociety(t, database, "Green Meadows")
	testutil.SeedMember(t, database, societyID, "sec", RoleSecretary)
	testutil.SeedMember(t, database, societyID, "guard", RoleWatchman)
	testutil.SeedMember(t, database, societyID, "alice", RoleResident)
	testutil.SeedMember(t, database, societyID, "bob", RoleResident)
	return fixture{db: database, societyID: societyID}
}

func (f fixture) actor(userID, role string) Actor {
	return Actor{UserID: userID, SocietyID: f.societyID, Role: role}
}
