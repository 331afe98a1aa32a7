package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func fakeVerifier(valid map[string]string) TokenVerifier {
	return func(_ context.Context, token string) (string, error) {
		if userID, ok := valid[token]; ok {
			return userID, nil
		}
		return "", errors.New("bad signature")
	}
}

func TestUserFromRequestBearerToken(t *testing.T) {
	res := NewResolver(fakeVerifier(map[string]string{"tok_1": "user_clerk_1"}), false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok_1")

	user, err := res.UserFromRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.ID != "user_clerk_1" || user.Source != SourceClerk {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserFromRequestSessionCookie(t *testing.T) {
	res := NewResolver(fakeVerifier(map[string]string{"tok_2": "user_clerk_2"}), false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok_2"})

	user, err := res.UserFromRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.ID != "user_clerk_2" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserFromRequestInvalidToken(t *testing.T) {
	res := NewResolver(fakeVerifier(nil), true)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged")
	req.Header.Set(DevUserHeader, "user_dev")

	user, err := res.UserFromRequest(req)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if user != nil {
		t.Fatalf("expected no user, got %+v", user)
	}
}

func TestUserFromRequestDevHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DevUserHeader, " user_dev ")

	user, err := NewResolver(nil, true).UserFromRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.ID != "user_dev" || user.Source != SourceDev {
		t.Fatalf("unexpected user: %+v", user)
	}

	user, err = NewResolver(nil, false).UserFromRequest(req)
	if err != nil || user != nil {
		t.Fatalf("expected dev header to be ignored, got %+v, %v", user, err)
	}
}

func TestUserFromRequestAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	user, err := NewResolver(fakeVerifier(nil), true).UserFromRequest(req)
	if err != nil || user != nil {
		t.Fatalf("expected anonymous request, got %+v, %v", user, err)
	}
}
