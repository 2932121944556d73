package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paie/internal/domain/auth"
)

func TestRateLimitUsesClientKeyBeforeIPFallback(t *testing.T) {
	limited := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	first := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/compute", nil)
	first = first.WithContext(WithClient(first.Context(), auth.ClientContext{Client: "ui"}))
	first.RemoteAddr = "198.51.100.11:2222"
	firstRec := httptest.NewRecorder()
	limited.ServeHTTP(firstRec, first)
	if firstRec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", firstRec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/compute", nil)
	second = second.WithContext(WithClient(second.Context(), auth.ClientContext{Client: "ui"}))
	second.RemoteAddr = "198.51.100.12:3333"
	secondRec := httptest.NewRecorder()
	limited.ServeHTTP(secondRec, second)
	if secondRec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled by client key, got %d", secondRec.Code)
	}
	if secondRec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestRateLimitFallsBackToIP(t *testing.T) {
	limited := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	first := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/compute", nil)
	first.RemoteAddr = "203.0.113.10:4444"
	firstRec := httptest.NewRecorder()
	limited.ServeHTTP(firstRec, first)
	if firstRec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", firstRec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/compute", nil)
	second.RemoteAddr = "203.0.113.10:5555"
	secondRec := httptest.NewRecorder()
	limited.ServeHTTP(secondRec, second)
	if secondRec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request from same IP to be throttled, got %d", secondRec.Code)
	}

	other := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/compute", nil)
	other.RemoteAddr = "203.0.113.99:5555"
	otherRec := httptest.NewRecorder()
	limited.ServeHTTP(otherRec, other)
	if otherRec.Code != http.StatusNoContent {
		t.Fatalf("expected other IP to pass, got %d", otherRec.Code)
	}
}

func TestClientIPKeyPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "192.0.2.7, 10.0.0.1")
	if got := ClientIPKey(req); got != "192.0.2.7" {
		t.Fatalf("expected forwarded IP, got %q", got)
	}
}
