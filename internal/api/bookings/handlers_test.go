package bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/booking"
	"github.com/codr1/Gatehouse/internal/db"
	"github.com/codr1/Gatehouse/internal/email"
	"github.com/codr1/Gatehouse/internal/ratelimit"
	"github.com/codr1/Gatehouse/internal/testutil"
)

type sentEmail struct {
	recipient string
	subject   string
	body      string
}

type fakeSender struct {
	sent chan sentEmail
}

func (f *fakeSender) Send(_ context.Context, recipient, subject, body string) error {
	f.sent <- sentEmail{recipient: recipient, subject: subject, body: body}
	return nil
}

type fixture struct {
	db         *db.DB
	ledger     *booking.Ledger
	sender     *fakeSender
	societyID  string
	facilityID string
	date       string
}

func setup(t *testing.T, limiter *ratelimit.Limiter) fixture {
	t.Helper()

	database := testutil.NewTestDB(t)
	deps = Dependencies{}
	handlerOnce = sync.Once{}
	t.Cleanup(func() {
		deps = Dependencies{}
		handlerOnce = sync.Once{}
	})

	sender := &fakeSender{sent: make(chan sentEmail, 10)}
	ledger := booking.NewLedger(database)
	InitHandlers(Dependencies{
		Queries:  database.Queries,
		Ledger:   ledger,
		Registry: booking.NewRegistry(database),
		Notifier: email.NewNotifier(database.Queries, sender),
		Limiter:  limiter,
	})

	societyID := testutil.SeedSociety(t, database, "Green Meadows")
	testutil.SeedMember(t, database, societyID, "alice", "resident")
	testutil.SeedMember(t, database, societyID, "bob", "resident")
	testutil.SeedMember(t, database, societyID, "sec", "secretary")

	return fixture{
		db:         database,
		ledger:     ledger,
		sender:     sender,
		societyID:  societyID,
		facilityID: testutil.SeedFacility(t, database, societyID, "Clubhouse"),
		date:       ledger.Tomorrow(),
	}
}

func (f fixture) request(method, target, body, userID string, role authz.Role) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := authz.ContextWithUser(req.Context(), &authz.AuthUser{ID: userID, Source: "test"})
	ctx = authz.ContextWithSociety(ctx, &authz.SocietyContext{UserID: userID, SocietyID: f.societyID, Role: role})
	return req.WithContext(ctx)
}

func (f fixture) createBody(start, end string) string {
	body := `{"facility_id":"` + f.facilityID + `","booking_date":"` + f.date + `","start_time":"` + start + `"`
	if end != "" {
		body += `,"end_time":"` + end + `"`
	}
	return body + "}"
}

func (f fixture) book(t *testing.T, userID, start string) booking.Booking {
	t.Helper()
	recorder := httptest.NewRecorder()
	HandleBookingCreate(recorder, f.request(http.MethodPost, "/api/v1/bookings", f.createBody(start, ""), userID, authz.RoleResident))
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}
	var resp struct {
		Booking booking.Booking `json:"booking"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Booking
}

func waitForEmail(t *testing.T, f fixture) sentEmail {
	t.Helper()
	select {
	case msg := <-f.sender.sent:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for email")
		return sentEmail{}
	}
}

func TestBookingCreateDefaultsEndAndSendsConfirmation(t *testing.T) {
	f := setup(t, nil)

	created := f.book(t, "alice", "10:00")
	if created.EndTime != "11:00" {
		t.Fatalf("expected default end 11:00, got %s", created.EndTime)
	}
	if created.UserID != "alice" || created.SocietyID != f.societyID {
		t.Fatalf("unexpected booking: %+v", created)
	}

	msg := waitForEmail(t, f)
	if msg.recipient != "alice@example.com" {
		t.Fatalf("expected alice@example.com, got %s", msg.recipient)
	}
	if !strings.Contains(msg.subject, "Clubhouse") {
		t.Fatalf("expected facility in subject, got %q", msg.subject)
	}
}

func TestBookingCreateConflict(t *testing.T) {
	f := setup(t, nil)
	f.book(t, "alice", "10:00")

	recorder := httptest.NewRecorder()
	HandleBookingCreate(recorder, f.request(http.MethodPost, "/api/v1/bookings", f.createBody("10:00", "12:00"), "bob", authz.RoleResident))

	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, recorder.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != booking.ConflictMessage {
		t.Fatalf("expected %q, got %q", booking.ConflictMessage, resp.Error)
	}
}

func TestBookingCreateRejectsBadInput(t *testing.T) {
	f := setup(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "unknown field", body: `{"facility_id":"x","booking_date":"2030-01-01","start_time":"10:00","note":"hi"}`},
		{name: "missing facility", body: `{"booking_date":"2030-01-01","start_time":"10:00"}`},
		{name: "bad date", body: `{"facility_id":"x","booking_date":"01/01/2030","start_time":"10:00"}`},
		{name: "off grid start", body: f.createBody("10:30", "")},
		{name: "end before start", body: f.createBody("10:00", "09:00")},
		{name: "past date", body: `{"facility_id":"` + f.facilityID + `","booking_date":"2000-01-01","start_time":"10:00"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			HandleBookingCreate(recorder, f.request(http.MethodPost, "/api/v1/bookings", tc.body, "alice", authz.RoleResident))
			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, recorder.Code, recorder.Body.String())
			}
		})
	}
}

func TestBookingCreateRateLimited(t *testing.T) {
	limiter := ratelimit.New(&ratelimit.Config{MaxAttempts: 1, Window: time.Minute})
	t.Cleanup(limiter.Close)
	f := setup(t, limiter)

	f.book(t, "alice", "10:00")

	recorder := httptest.NewRecorder()
	HandleBookingCreate(recorder, f.request(http.MethodPost, "/api/v1/bookings", f.createBody("11:00", ""), "alice", authz.RoleResident))

	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, recorder.Code)
	}
	if recorder.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	// Other users keep their own budget.
	f.book(t, "bob", "11:00")
}

func TestBookingCancelAuthorization(t *testing.T) {
	f := setup(t, nil)
	created := f.book(t, "alice", "10:00")
	waitForEmail(t, f)

	recorder := httptest.NewRecorder()
	req := f.request(http.MethodDelete, "/api/v1/bookings/"+created.ID, "", "bob", authz.RoleResident)
	req.SetPathValue("id", created.ID)
	HandleBookingCancel(recorder, req)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, recorder.Code)
	}

	recorder = httptest.NewRecorder()
	req = f.request(http.MethodDelete, "/api/v1/bookings/"+created.ID, "", "sec", authz.RoleSecretary)
	req.SetPathValue("id", created.ID)
	HandleBookingCancel(recorder, req)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d: %s", http.StatusNoContent, recorder.Code, recorder.Body.String())
	}

	msg := waitForEmail(t, f)
	if msg.recipient != "alice@example.com" {
		t.Fatalf("expected owner to be notified, got %s", msg.recipient)
	}
	if !strings.Contains(msg.body, "secretary") {
		t.Fatalf("expected cancelling role in body, got %q", msg.body)
	}

	recorder = httptest.NewRecorder()
	req = f.request(http.MethodDelete, "/api/v1/bookings/"+created.ID, "", "alice", authz.RoleResident)
	req.SetPathValue("id", created.ID)
	HandleBookingCancel(recorder, req)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestBookingListAndMine(t *testing.T) {
	f := setup(t, nil)
	f.book(t, "alice", "12:00")
	f.book(t, "bob", "08:00")
	f.book(t, "alice", "09:00")

	recorder := httptest.NewRecorder()
	HandleBookingList(recorder, f.request(http.MethodGet, "/api/v1/bookings", "", "alice", authz.RoleResident))
	all := decodeBookings(t, recorder)
	if len(all) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(all))
	}
	if all[0].StartTime != "08:00" || all[2].StartTime != "12:00" {
		t.Fatalf("unexpected order: %+v", all)
	}

	recorder = httptest.NewRecorder()
	HandleMyBookings(recorder, f.request(http.MethodGet, "/api/v1/bookings/mine", "", "alice", authz.RoleResident))
	mine := decodeBookings(t, recorder)
	if len(mine) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(mine))
	}
	for _, b := range mine {
		if b.UserID != "alice" {
			t.Fatalf("unexpected owner %s", b.UserID)
		}
	}
	if mine[0].StartTime != "09:00" || mine[1].StartTime != "12:00" {
		t.Fatalf("expected ledger order preserved, got %+v", mine)
	}
}

func decodeBookings(t *testing.T, recorder *httptest.ResponseRecorder) []booking.Booking {
	t.Helper()
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	var resp struct {
		Bookings []booking.Booking `json:"bookings"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Bookings
}
