package security

import (
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService([]byte("secret"), 7*24*time.Hour)

	token, err := svc.GenerateToken(42, "alice", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected three segments, got %d", len(parts))
	}
	if strings.ContainsAny(token, "=+/") {
		t.Fatalf("expected unpadded base64url, got %q", token)
	}

	identity, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.UserID != 42 || identity.Username != "alice" || identity.Role != "admin" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if until := time.Until(identity.ExpiresAt); until < 6*24*time.Hour || until > 7*24*time.Hour {
		t.Fatalf("unexpected expiry in %v", until)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	svc := NewTokenService([]byte("secret"), 7*24*time.Hour)

	token, err := svc.generateTokenAt(1, "bob", "user", time.Now().Add(-8*24*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.VerifyToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := NewTokenService([]byte("secret"), time.Hour)
	verifier := NewTokenService([]byte("other"), time.Hour)

	token, _ := issuer.GenerateToken(1, "bob", "user")
	if _, err := verifier.VerifyToken(token); err == nil {
		t.Fatalf("expected signature mismatch to be rejected")
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	svc := NewTokenService([]byte("secret"), time.Hour)
	token, _ := svc.GenerateToken(1, "bob", "user")
	parts := strings.Split(token, ".")

	cases := map[string]string{
		"two segments":      parts[0] + "." + parts[1],
		"four segments":     token + ".x",
		"tampered payload":  parts[0] + "." + parts[1] + "x." + parts[2],
		"garbage":           "not-a-token",
		"empty":             "",
		"swapped signature": parts[0] + "." + parts[1] + "." + parts[0],
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.VerifyToken(tok); err == nil {
				t.Fatalf("expected %q to be rejected", name)
			}
		})
	}
}

func TestIdentityFromClaims_Missing(t *testing.T) {
	if _, err := IdentityFromClaims(map[string]interface{}{"sub": "1"}); err == nil {
		t.Fatalf("expected missing claims to fail")
	}
	if _, err := IdentityFromClaims(map[string]interface{}{
		"sub": "abc", "username": "a", "role": "user", "exp": time.Now(),
	}); err == nil {
		t.Fatalf("expected non-numeric sub to fail")
	}
}
