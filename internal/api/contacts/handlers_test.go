package contacts

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
	directory = nil
	handlerOnce = sync.Once{}
	InitHandlers(community.NewDirectory(database, "IN"))
	t.Cleanup(func() {
		directory = nil
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

func add(t *testing.T, societyID, body string) community.EmergencyContact {
	t.Helper()

	recorder := httptest.NewRecorder()
	HandleContactCreate(recorder, request(http.MethodPost, "/api/v1/emergency-contacts", body, societyID, "sec", authz.RoleSecretary))
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}
	var resp struct {
		Contact community.EmergencyContact `json:"contact"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Contact
}

func TestContactCreate(t *testing.T) {
	societyID := setup(t)

	tests := []struct {
		name   string
		role   authz.Role
		body   string
		status int
	}{
		{name: "resident", role: authz.RoleResident, body: `{"name":"Police","phone":"100"}`, status: http.StatusForbidden},
		{name: "watchman", role: authz.RoleWatchman, body: `{"name":"Police","phone":"100"}`, status: http.StatusForbidden},
		{name: "unknown category", role: authz.RoleSecretary, body: `{"name":"Plumber","phone":"100","category":"plumbing"}`, status: http.StatusBadRequest},
		{name: "bad phone", role: authz.RoleSecretary, body: `{"name":"Clinic","phone":"12"}`, status: http.StatusBadRequest},
		{name: "secretary", role: authz.RoleSecretary, body: `{"name":"Police","phone":"100","category":"police"}`, status: http.StatusCreated},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			HandleContactCreate(recorder, request(http.MethodPost, "/api/v1/emergency-contacts", tc.body, societyID, "user", tc.role))
			if recorder.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, recorder.Code, recorder.Body.String())
			}
		})
	}
}

func TestContactListNormalizesPhones(t *testing.T) {
	societyID := setup(t)
	add(t, societyID, `{"name":"City Hospital","phone":"098765 43210","category":"hospital"}`)
	add(t, societyID, `{"name":"Fire Brigade","phone":"101","category":"fire"}`)

	recorder := httptest.NewRecorder()
	HandleContactList(recorder, request(http.MethodGet, "/api/v1/emergency-contacts", "", societyID, "alice", authz.RoleResident))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	var resp struct {
		Contacts []community.EmergencyContact `json:"contacts"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(resp.Contacts))
	}
	if resp.Contacts[0].Category != "fire" || resp.Contacts[0].Phone != "101" {
		t.Fatalf("expected fire short code first, got %+v", resp.Contacts[0])
	}
	if resp.Contacts[1].Phone != "+919876543210" {
		t.Fatalf("expected E.164 phone, got %q", resp.Contacts[1].Phone)
	}
}

func TestContactDelete(t *testing.T) {
	societyID := setup(t)
	contact := add(t, societyID, `{"name":"Police","phone":"100"}`)

	for _, want := range []int{http.StatusNoContent, http.StatusNotFound} {
		recorder := httptest.NewRecorder()
		req := request(http.MethodDelete, "/api/v1/emergency-contacts/"+contact.ID, "", societyID, "root", authz.RoleAdmin)
		req.SetPathValue("id", contact.ID)
		HandleContactDelete(recorder, req)
		if recorder.Code != want {
			t.Fatalf("expected status %d, got %d", want, recorder.Code)
		}
	}
}
