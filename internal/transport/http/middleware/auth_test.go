package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paie/internal/domain/auth"
)

func TestAuthMiddlewareSetsClient(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{Client: "ui"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client, ok := GetClient(r.Context())
		if !ok {
			t.Fatal("expected client in context")
		}
		if client.Client != "ui" || client.ExpiresAt.IsZero() {
			t.Fatalf("unexpected client: %+v", client)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestAuthMiddlewareQueryTokenOnlyForUpgrades(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{Client: "ui"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	var gotClient bool
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotClient = GetClient(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/payroll/live?access_token="+token, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !gotClient {
		t.Fatal("expected client from query token on websocket upgrade")
	}

	req = httptest.NewRequest(http.MethodGet, "/payroll/schedule?access_token="+token, nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if gotClient {
		t.Fatal("did not expect query token outside websocket upgrades")
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClient(r.Context()); ok {
			t.Fatal("did not expect client in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestRequireClient(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	RequireClient(true)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(WithClient(req.Context(), auth.ClientContext{Client: "ui"}))
	RequireClient(true)(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 with client, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	RequireClient(false)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 with auth disabled, got %d", rec.Code)
	}
}
