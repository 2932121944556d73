package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecureHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	SecureHeaders(true)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("Cache-Control") != "no-store" || rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatalf("unexpected headers %v", rec.Header())
	}

	rec = httptest.NewRecorder()
	SecureHeaders(false)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("HSTS must only be sent in production")
	}
}

func TestBodyLimit(t *testing.T) {
	var readErr error
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 2048)))
	BodyLimit(1024)(next).ServeHTTP(httptest.NewRecorder(), req)
	var maxErr *http.MaxBytesError
	if !errors.As(readErr, &maxErr) {
		t.Fatalf("expected MaxBytesError, got %v", readErr)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
	BodyLimit(1024)(next).ServeHTTP(httptest.NewRecorder(), req)
	if readErr != nil {
		t.Fatalf("expected small body to pass, got %v", readErr)
	}
}
