package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"paie/internal/domain/auth"
	"paie/internal/transport/http/api"
)

type ctxKey string

const ctxKeyClient ctxKey = "client"

const accessTokenParam = "access_token"

// Auth attaches the bearer token's client to the request context. Requests
// without a valid token pass through unauthenticated.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			client := auth.ClientContext{Client: claims.Client}
			if claims.ExpiresAt != nil {
				client.ExpiresAt = claims.ExpiresAt.Time
			}
			ctx := context.WithValue(r.Context(), ctxKeyClient, client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken reads the Authorization header. Browsers cannot set headers on
// a websocket handshake, so upgrades may pass the token as ?access_token=.
func bearerToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return ""
		}
		return parts[1]
	}
	if websocket.IsWebSocketUpgrade(r) {
		return r.URL.Query().Get(accessTokenParam)
	}
	return ""
}

// RequireClient rejects unauthenticated requests when enabled is true.
func RequireClient(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if enabled {
				if _, ok := GetClient(r.Context()); !ok {
					api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetClient(ctx context.Context) (auth.ClientContext, bool) {
	client, ok := ctx.Value(ctxKeyClient).(auth.ClientContext)
	return client, ok
}

// WithClient returns a context carrying client, for tests and internal calls.
func WithClient(ctx context.Context, client auth.ClientContext) context.Context {
	return context.WithValue(ctx, ctxKeyClient, client)
}
