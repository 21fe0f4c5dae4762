package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestTokenService(t *testing.T, validity time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService([]byte("test-signing-key"), validity)
	if err != nil {
		t.Fatalf("NewTokenService error: %v", err)
	}
	return svc
}

func TestTokenIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Hour)
	userID := "64b5f0c4a1b2c3d4e5f60718"

	tok, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got != userID {
		t.Fatalf("subject mismatch: got %q want %q", got, userID)
	}
}

func TestTokenVerifyExpired(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, -1*time.Second)
	tok, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.Verify(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenVerifyWrongKey(t *testing.T) {
	t.Parallel()

	issuer := newTestTokenService(t, time.Hour)
	tok, err := issuer.Issue("u2")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	verifier, err := NewTokenService([]byte("another-key"), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService error: %v", err)
	}
	if _, err := verifier.Verify(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong key, got %v", err)
	}
}

func TestTokenVerifyTampered(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Hour)
	tok, err := svc.Issue("u3")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}

	// Flip a character in the claims segment; the signature must no longer match.
	claims := []byte(parts[1])
	if claims[0] == 'A' {
		claims[0] = 'B'
	} else {
		claims[0] = 'A'
	}
	tampered := parts[0] + "." + string(claims) + "." + parts[2]

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered payload, got %v", err)
	}

	// Same for a damaged signature segment.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	badSig := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Verify(badSig); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered signature, got %v", err)
	}
}

func TestTokenVerifyMalformed(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Hour)
	for _, tok := range []string{"", "garbage", "not.a.jwt", "a.b"} {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid for %q, got %v", tok, err)
		}
	}
}

func TestTokenServiceRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenService(nil, time.Hour); err == nil {
		t.Fatal("expected error for empty signing key")
	}
}
