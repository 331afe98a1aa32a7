package complaints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/codr1/Gatehouse/internal/api/authz"
	"github.com/codr1/Gatehouse/internal/community"
	"github.com/codr1/Gatehouse/internal/testutil"
)

func setup(t *testing.T) string {
	t.Helper()

	database := testutil.NewTestDB(t)
	box = nil
	handlerOnce = sync.Once{}
	InitHandlers(community.NewComplaintBox(database))
	t.Cleanup(func() {
		box = nil
		handlerOnce = sync.Once{}
	})
	return testutil.SeedSociety(t, database, "Green Meadows")
}

func request(method, target, body, societyID, userID string, role authz.Role) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := authz.ContextWithUser(req.Context(), &authz.AuthUser{ID: userID, Source: "test"})
	ctx = authz.ContextWithSociety(ctx, &authz.SocietyContext{UserID: userID, SocietyID: societyID, Role: role})
	return req.WithContext(ctx)
}

func file(t *testing.T, societyID, userID, body string) community.Complaint {
	t.Helper()

	recorder := httptest.NewRecorder()
	HandleComplaintCreate(recorder, request(http.MethodPost, "/api/v1/complaints", body, societyID, userID, authz.RoleResident))
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}
	var resp struct {
		Complaint community.Complaint `json:"complaint"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Complaint
}

func list(t *testing.T, societyID, userID string, role authz.Role) []community.Complaint {
	t.Helper()

	recorder := httptest.NewRecorder()
	HandleComplaintList(recorder, request(http.MethodGet, "/api/v1/complaints", "", societyID, userID, role))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	var resp struct {
		Complaints []community.Complaint `json:"complaints"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Complaints
}

func TestComplaintCreateValidation(t *testing.T) {
	societyID := setup(t)

	for _, body := range []string{
		`{"category":"gossip","description":"Neighbours talk"}`,
		`{"category":"noise","description":"  "}`,
		`{"description":"Missing category"}`,
	} {
		recorder := httptest.NewRecorder()
		HandleComplaintCreate(recorder, request(http.MethodPost, "/api/v1/complaints", body, societyID, "alice", authz.RoleResident))
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", body, http.StatusBadRequest, recorder.Code)
		}
	}
}

func TestComplaintVisibility(t *testing.T) {
	societyID := setup(t)
	mine := file(t, societyID, "alice", `{"category":"water_supply","description":"No water"}`)
	file(t, societyID, "bob", `{"category":"noise","description":"Drilling at night"}`)

	if got := list(t, societyID, "alice", authz.RoleResident); len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("resident should only see own complaints, got %+v", got)
	}
	if got := list(t, societyID, "sec", authz.RoleSecretary); len(got) != 2 {
		t.Fatalf("secretary should see every complaint, got %d", len(got))
	}

	recorder := httptest.NewRecorder()
	req := request(http.MethodGet, "/api/v1/complaints/"+mine.ID, "", societyID, "bob", authz.RoleResident)
	req.SetPathValue("id", mine.ID)
	HandleComplaintGet(recorder, req)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d for another resident's complaint, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestComplaintStatusUpdate(t *testing.T) {
	societyID := setup(t)
	complaint := file(t, societyID, "alice", `{"category":"parking","description":"Car in my slot"}`)

	tests := []struct {
		name   string
		userID string
		role   authz.Role
		body   string
		status int
	}{
		{name: "resident", userID: "alice", role: authz.RoleResident, body: `{"status":"resolved"}`, status: http.StatusForbidden},
		{name: "unknown status", userID: "sec", role: authz.RoleSecretary, body: `{"status":"closed"}`, status: http.StatusBadRequest},
		{name: "secretary", userID: "sec", role: authz.RoleSecretary, body: `{"status":"in_progress"}`, status: http.StatusOK},
		{name: "admin", userID: "root", role: authz.RoleAdmin, body: `{"status":"resolved"}`, status: http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			req := request(http.MethodPatch, "/api/v1/complaints/"+complaint.ID, tc.body, societyID, tc.userID, tc.role)
			req.SetPathValue("id", complaint.ID)
			HandleComplaintStatus(recorder, req)
			if recorder.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, recorder.Code, recorder.Body.String())
			}
		})
	}

	if got := list(t, societyID, "alice", authz.RoleResident); got[0].Status != community.ComplaintResolved {
		t.Fatalf("expected resolved complaint, got %q", got[0].Status)
	}
}
