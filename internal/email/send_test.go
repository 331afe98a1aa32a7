package email

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codr1/Gatehouse/internal/testutil"
)

type sentEmail struct {
	recipient string
	subject   string
	body      string
}

type fakeEmailSender struct {
	mu      sync.Mutex
	sent    []sentEmail
	err     error
	started chan struct{}
	ctxErr  chan error
	delay   time.Duration
}

func newFakeEmailSender() *fakeEmailSender {
	return &fakeEmailSender{
		started: make(chan struct{}, 1),
		ctxErr:  make(chan error, 1),
	}
}

func (f *fakeEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			f.reportCtxErr(ctx.Err())
			return ctx.Err()
		case <-time.After(f.delay):
		}
	}
	f.reportCtxErr(ctx.Err())

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{recipient: recipient, subject: subject, body: body})
	return nil
}

func (f *fakeEmailSender) reportCtxErr(err error) {
	select {
	case f.ctxErr <- err:
	default:
	}
}

func (f *fakeEmailSender) messages() []sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentEmail(nil), f.sent...)
}

func waitForSignal(t *testing.T, ch <-chan struct{}, message string) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal(message)
	}
}

func waitForError(t *testing.T, ch <-chan error, message string) error {
	t.Helper()

	select {
	case err := <-ch:
		return err
	case <-time.After(time.Second):
		t.Fatal(message)
		return nil
	}
}

func TestDeliverResolvesMemberEmail(t *testing.T) {
	database := testutil.NewTestDB(t)
	societyID := testutil.SeedSociety(t, database, "Green Meadows")
	testutil.SeedMember(t, database, societyID, "user_a", "resident")
	sender := newFakeEmailSender()
	notifier := NewNotifier(database.Queries, sender)

	message := BuildBookingConfirmation(BookingDetails{
		SocietyName:  "Green Meadows",
		FacilityName: "Clubhouse",
		Date:         "2025-06-01",
		StartTime:    "09:00",
		EndTime:      "10:00",
	})
	require.NoError(t, notifier.Deliver(context.Background(), societyID, "user_a", KindConfirmation, message))

	sent := sender.messages()
	require.Len(t, sent, 1)
	require.Equal(t, "user_a@example.com", sent[0].recipient)
	require.Contains(t, sent[0].subject, "Clubhouse")
}

func TestDeliverWithoutMembership(t *testing.T) {
	database := testutil.NewTestDB(t)
	societyID := testutil.SeedSociety(t, database, "Green Meadows")
	notifier := NewNotifier(database.Queries, newFakeEmailSender())

	err := notifier.Deliver(context.Background(), societyID, "stranger", KindReminder, Message{Subject: "S", Body: "B"})
	require.ErrorIs(t, err, ErrNoRecipient)
}

func TestDeliverSkipsInactiveMember(t *testing.T) {
	database := testutil.NewTestDB(t)
	societyID := testutil.SeedSociety(t, database, "Green Meadows")
	testutil.SeedMemberStatus(t, database, societyID, "moved_out", "resident", "inactive")
	sender := newFakeEmailSender()

	err := NewNotifier(database.Queries, sender).Deliver(context.Background(), societyID, "moved_out", KindReminder, Message{Subject: "S", Body: "B"})
	require.ErrorIs(t, err, ErrNoRecipient)
	require.Empty(t, sender.messages())
}

func TestDeliverSenderFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	societyID := testutil.SeedSociety(t, database, "Green Meadows")
	testutil.SeedMember(t, database, societyID, "user_a", "resident")
	sender := newFakeEmailSender()
	sender.err = errors.New("throttled")

	err := NewNotifier(database.Queries, sender).Deliver(context.Background(), societyID, "user_a", KindCancellation, Message{Subject: "S", Body: "B"})
	require.ErrorContains(t, err, "throttled")
}

func TestDeliverAsyncOutlivesCallerCancellation(t *testing.T) {
	database := testutil.NewTestDB(t)
	societyID := testutil.SeedSociety(t, database, "Green Meadows")
	testutil.SeedMember(t, database, societyID, "user_a", "resident")
	sender := newFakeEmailSender()
	sender.delay = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	NewNotifier(database.Queries, sender).DeliverAsync(ctx, societyID, "user_a", KindConfirmation, Message{Subject: "S", Body: "B"})

	waitForSignal(t, sender.started, "expected send to start")
	cancel()

	require.NoError(t, waitForError(t, sender.ctxErr, "expected send to finish"), "send context must survive cancellation")
}

func TestNilNotifierIsNoop(t *testing.T) {
	var notifier *Notifier
	require.False(t, notifier.Enabled())
	require.NoError(t, notifier.Deliver(context.Background(), "s", "u", KindReminder, Message{Subject: "S", Body: "B"}))
	notifier.DeliverAsync(context.Background(), "s", "u", KindReminder, Message{Subject: "S", Body: "B"})
}

func TestBuildBookingReminder(t *testing.T) {
	message := BuildBookingReminder("Green Meadows", []BookingDetails{
		{FacilityName: "Clubhouse", Date: "2025-06-01", StartTime: "09:00", EndTime: "10:00"},
		{FacilityName: "Pool", Date: "2025-06-01", StartTime: "18:00", EndTime: "19:00"},
	})
	require.Equal(t, "Reminder: 2 bookings tomorrow", message.Subject)
	require.Contains(t, message.Body, "Sunday, Jun 1, 2025")
	require.Contains(t, message.Body, "- Pool, 18:00 - 19:00")

	require.Empty(t, BuildBookingReminder("Green Meadows", nil).Subject)
}

func TestBuildBookingCancellation(t *testing.T) {
	details := BookingDetails{SocietyName: "Green Meadows", FacilityName: "Clubhouse", Date: "2025-06-01", StartTime: "09:00", EndTime: "10:00"}

	require.Contains(t, BuildBookingCancellation(details, "").Body, "has been cancelled")
	require.Contains(t, BuildBookingCancellation(details, "secretary").Body, "cancelled by the society secretary")
}

func TestNewSESClientValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  SESConfig
	}{
		{name: "missing region", cfg: SESConfig{Sender: "noreply@example.com"}},
		{name: "missing sender", cfg: SESConfig{Region: "ap-south-1"}},
		{name: "half a key pair", cfg: SESConfig{Region: "ap-south-1", Sender: "noreply@example.com", AccessKeyID: "AKIA"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSESClient(context.Background(), tc.cfg)
			require.Error(t, err)
		})
	}
}

func TestNilSESClientSend(t *testing.T) {
	var client *SESClient
	require.Error(t, client.Send(context.Background(), "a@example.com", "s", "b"))
}
