package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/codr1/Gatehouse/internal/api/authz"
)

const (
	// SessionCookieName is the cookie Clerk's frontend SDK sets.
	SessionCookieName = "__session"
	// DevUserHeader carries a user id directly when development identities are allowed.
	DevUserHeader = "X-User-ID"

	SourceClerk = "clerk"
	SourceDev   = "dev"
)

var ErrInvalidToken = errors.New("invalid session token")

// TokenVerifier turns a session token into the provider's user id.
type TokenVerifier func(ctx context.Context, token string) (string, error)

// Resolver finds the identity behind a request.
type Resolver struct {
	verify         TokenVerifier
	allowDevHeader bool
}

// NewResolver returns a Resolver. A nil verifier disables token checks;
// allowDevHeader accepts DevUserHeader as the user id.
func NewResolver(verify TokenVerifier, allowDevHeader bool) *Resolver {
	return &Resolver{verify: verify, allowDevHeader: allowDevHeader}
}

// UserFromRequest returns the caller, or nil when the request carries no
// credentials. A token that fails verification is ErrInvalidToken.
func (res *Resolver) UserFromRequest(r *http.Request) (*authz.AuthUser, error) {
	if token := sessionToken(r); token != "" && res.verify != nil {
		userID, err := res.verify(r.Context(), token)
		if err != nil {
			return nil, errors.Join(ErrInvalidToken, err)
		}
		return &authz.AuthUser{ID: userID, Source: SourceClerk}, nil
	}

	if res.allowDevHeader {
		if userID := strings.TrimSpace(r.Header.Get(DevUserHeader)); userID != "" {
			return &authz.AuthUser{ID: userID, Source: SourceDev}, nil
		}
	}

	return nil, nil
}

func sessionToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
