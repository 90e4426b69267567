package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)

	token, err := manager.Generate(42, "+628123456789", true)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("verifying token: %v", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("parsing subject: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user 42, got %d", userID)
	}
	if claims.Phone != "+628123456789" {
		t.Errorf("expected phone preserved, got %q", claims.Phone)
	}
	if !claims.IsAdmin {
		t.Error("expected admin flag preserved")
	}
}

func TestVerify_RejectsForeignSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Minute)
	verifier := NewTokenManager("secret-b", time.Minute)

	token, err := issuer.Generate(1, "+628111111111", false)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected verification to fail for a foreign-signed token")
	}
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Generate(1, "+628111111111", false)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	if _, err := manager.Verify(token); err == nil {
		t.Fatal("expected verification to fail for an expired token")
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)

	if _, err := manager.Verify("not.a.token"); err == nil {
		t.Fatal("expected verification to fail for malformed input")
	}
}
