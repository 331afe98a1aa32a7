package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/rs/zerolog/log"
)

// clockSkewLeeway tolerates small clock drift between Clerk and this server
// when checking exp and nbf.
const clockSkewLeeway = 5 * time.Second

// clerkInitialized indicates whether the Clerk SDK has been initialized
var clerkInitialized bool

// InitClerk initializes Clerk SDK with the secret key
func InitClerk(secretKey string) {
	if secretKey == "" {
		log.Warn().Msg("Clerk secret key not configured")
		return
	}
	clerk.SetKey(secretKey)
	clerkInitialized = true
	log.Info().Msg("Clerk SDK initialized")
}

func ClerkInitialized() bool {
	return clerkInitialized
}

// VerifyClerkToken verifies a Clerk session JWT and returns its subject, the
// Clerk user id.
func VerifyClerkToken(ctx context.Context, token string) (string, error) {
	if !clerkInitialized {
		return "", errors.New("clerk not configured")
	}
	if token == "" {
		return "", errors.New("empty clerk token")
	}
	claims, err := jwt.Verify(ctx, &jwt.VerifyParams{
		Token:  token,
		Leeway: clockSkewLeeway,
	})
	if err != nil {
		return "", fmt.Errorf("verify clerk token: %w", err)
	}
	if claims.Subject == "" {
		return "", errors.New("clerk token has no subject")
	}
	return claims.Subject, nil
}
