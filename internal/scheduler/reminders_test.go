package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codr1/Gatehouse/internal/booking"
	"github.com/codr1/Gatehouse/internal/email"
	"github.com/codr1/Gatehouse/internal/testutil"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingSender struct {
	mu   sync.Mutex
	sent map[string]string
}

func (s *recordingSender) Send(_ context.Context, recipient, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sent == nil {
		s.sent = make(map[string]string)
	}
	s.sent[recipient] = body
	return nil
}

func TestReminderRunnerEmailsTomorrowsBookers(t *testing.T) {
	database := testutil.NewTestDB(t)
	societyID := testutil.SeedSociety(t, database, "Green Meadows")
	testutil.SeedMember(t, database, societyID, "user_a", "resident")
	testutil.SeedMember(t, database, societyID, "user_b", "resident")
	clubhouse := testutil.SeedFacility(t, database, societyID, "Clubhouse")
	pool := testutil.SeedFacility(t, database, societyID, "Pool")

	ledger := booking.NewLedger(database, booking.WithClock(fixedClock{now: time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC)}))
	ctx := context.Background()
	create := func(facilityID, userID, date, start, end string) {
		t.Helper()
		_, err := ledger.Book(ctx, booking.CreateParams{
			FacilityID: facilityID, SocietyID: societyID, UserID: userID,
			BookingDate: date, StartTime: start, EndTime: end,
		})
		require.NoError(t, err)
	}
	create(clubhouse, "user_a", "2025-06-01", "09:00", "10:00")
	create(pool, "user_a", "2025-06-01", "18:00", "19:00")
	create(pool, "user_b", "2025-06-02", "09:00", "10:00")
	create(pool, "user_nomail", "2025-06-01", "07:00", "08:00")

	sender := &recordingSender{}
	runner := NewReminderRunner(database, ledger, email.NewNotifier(database.Queries, sender))

	sent, err := runner.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, sent)

	body, ok := sender.sent["user_a@example.com"]
	require.True(t, ok, "expected reminder for user_a, got %v", sender.sent)
	require.Contains(t, body, "Clubhouse")
	require.Contains(t, body, "Pool")
	require.NotContains(t, sender.sent, "user_b@example.com", "user_b has no booking tomorrow")
}

func TestReminderRunnerWithoutEmail(t *testing.T) {
	database := testutil.NewTestDB(t)
	runner := NewReminderRunner(database, booking.NewLedger(database), email.NewNotifier(database.Queries, nil))

	sent, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, sent)
}
