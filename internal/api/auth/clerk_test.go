package auth

import (
	"context"
	"testing"
)

func TestVerifyClerkTokenRequiresInit(t *testing.T) {
	prev := clerkInitialized
	t.Cleanup(func() { clerkInitialized = prev })
	clerkInitialized = false

	if _, err := VerifyClerkToken(context.Background(), "token"); err == nil {
		t.Fatal("expected error when clerk is not configured")
	}
}

func TestInitClerkWithoutKey(t *testing.T) {
	prev := clerkInitialized
	t.Cleanup(func() { clerkInitialized = prev })
	clerkInitialized = false

	InitClerk("")
	if ClerkInitialized() {
		t.Fatal("expected clerk to stay uninitialized without a key")
	}
}
