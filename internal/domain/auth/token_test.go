package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
)

func TestHashAndCheckAPIKey(t *testing.T) {
	hash, err := HashAPIKey("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if err := CheckAPIKey(hash, "super-secret"); err != nil {
		t.Fatalf("expected key to match, got %v", err)
	}
	if err := CheckAPIKey(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateToken(secret, Claims{Client: "ui"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.Client != "ui" || parsed.Subject != "ui" {
		t.Fatalf("claims mismatch: %+v", parsed)
	}
	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseExpiredToken(t *testing.T) {
	token, err := GenerateToken("s", Claims{Client: "ui"}, -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("s", token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestServiceIssueToken(t *testing.T) {
	hash, err := HashAPIKey("key-1")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	svc := NewService("secret", hash, "", time.Hour)
	token, expires, err := svc.IssueToken("ui", "key-1", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Fatalf("expected future expiry, got %v", expires)
	}
	if claims, err := ParseToken("secret", token); err != nil || claims.Client != "ui" {
		t.Fatalf("unexpected token claims %+v (%v)", claims, err)
	}

	if _, _, err := svc.IssueToken("ui", "nope", ""); !errors.Is(err, ErrInvalidAPIKey) {
		t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
	}
	if _, _, err := NewService("secret", "", "", time.Hour).IssueToken("ui", "key-1", ""); !errors.Is(err, ErrTokenIssuingDisabled) {
		t.Fatalf("expected ErrTokenIssuingDisabled, got %v", err)
	}
}

func TestServiceIssueTokenWithMFA(t *testing.T) {
	hash, err := HashAPIKey("key-1")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "paie", AccountName: "ui"})
	if err != nil {
		t.Fatalf("totp generate: %v", err)
	}
	svc := NewService("secret", hash, key.Secret(), time.Hour)
	if !svc.MFARequired() {
		t.Fatal("expected MFA to be required")
	}

	if _, _, err := svc.IssueToken("ui", "key-1", ""); !errors.Is(err, ErrInvalidMFACode) {
		t.Fatalf("expected ErrInvalidMFACode, got %v", err)
	}
	code, err := totp.GenerateCode(key.Secret(), time.Now())
	if err != nil {
		t.Fatalf("totp code: %v", err)
	}
	if _, _, err := svc.IssueToken("ui", "key-1", code); err != nil {
		t.Fatalf("issue with valid code: %v", err)
	}
}
