package token

import (
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T, secret string) *Service {
	t.Helper()
	svc, err := NewService(Config{Secret: secret})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestNewServiceRequiresSecret(t *testing.T) {
	if _, err := NewService(Config{}); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestIssueValidateRoundTrip(t *testing.T) {
	svc := newTestService(t, "test-secret")

	raw, err := svc.Issue("u@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if raw == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := svc.Validate(raw)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Email != "u@x.com" {
		t.Errorf("expected email u@x.com, got %q", claims.Email)
	}

	window := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if window != 7*24*time.Hour {
		t.Errorf("expected exp = iat + 604800s, got %v", window)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(t, "test-secret")

	issuedAt := time.Now().Add(-8 * 24 * time.Hour)
	svc.now = func() time.Time { return issuedAt }
	raw, err := svc.Issue("u@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Validate(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := newTestService(t, "secret-one")
	verifier := newTestService(t, "secret-two")

	raw, err := issuer.Issue("u@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Validate(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestValidateMalformedToken(t *testing.T) {
	svc := newTestService(t, "test-secret")

	for _, raw := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		if _, err := svc.Validate(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}

func TestValidateCustomTTL(t *testing.T) {
	svc, err := NewService(Config{Secret: "test-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	raw, err := svc.Issue("u@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	claims, err := svc.Validate(raw)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("expected 1h validity window, got %v", got)
	}
}
