package auth

import (
	"testing"
	"time"

	"upwatch/internal/domain"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	iss := NewTokenIssuer("test-secret")
	tok, err := iss.Issue(domain.UserID("u-123"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	uid, err := iss.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if uid != "u-123" {
		t.Fatalf("want sub u-123, got %q", uid)
	}
}

func TestTokenIssuer_WrongSecretRejected(t *testing.T) {
	tok, err := NewTokenIssuer("secret-a").Issue("u-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewTokenIssuer("secret-b").Verify(tok); err == nil {
		t.Fatal("want verification failure with wrong secret")
	}
}

func TestTokenIssuer_ExpiredRejected(t *testing.T) {
	iss := NewTokenIssuer("test-secret")
	iss.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	tok, err := iss.Issue("u-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	iss.now = time.Now
	if _, err := iss.Verify(tok); err == nil {
		t.Fatal("want expiry rejection")
	}
}

func TestTokenIssuer_GarbageRejected(t *testing.T) {
	iss := NewTokenIssuer("test-secret")
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := iss.Verify(tok); err == nil {
			t.Fatalf("want rejection for %q", tok)
		}
	}
}
