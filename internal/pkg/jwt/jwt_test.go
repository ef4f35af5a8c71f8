package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewService("secret", time.Minute, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user ID %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "admin" {
		t.Fatalf("expected role admin, got %q", claims.Role)
	}
}

func TestExpiredAccessToken(t *testing.T) {
	svc := NewService("secret", -time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "user")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := NewService("secret-a", time.Minute, time.Hour).GenerateAccessToken(uuid.New(), "user")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := NewService("secret-b", time.Minute, time.Hour).ValidateAccessToken(token); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	svc := NewService("secret", time.Minute, time.Hour)

	tok1, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	tok2, _ := svc.GenerateRefreshToken()
	if tok1 == tok2 {
		t.Fatal("expected unique refresh tokens")
	}

	if HashRefreshToken(tok1) != HashRefreshToken(tok1) {
		t.Fatal("expected deterministic hash")
	}
	if HashRefreshToken(tok1) == HashRefreshToken(tok2) {
		t.Fatal("expected distinct hashes for distinct tokens")
	}
}
