package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"paie/internal/domain/auth"
	"paie/internal/requestctx"
	"paie/internal/transport/http/api"
	"paie/internal/transport/http/middleware"
	"paie/internal/transport/http/shared"
)

const (
	defaultClient = "default"
	tokenAttempts = 10
)

var clientPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

type Handler struct {
	Service *auth.Service
	Logger  *slog.Logger
}

func NewHandler(service *auth.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Service: service, Logger: logger}
}

type tokenRequest struct {
	APIKey  string `json:"apiKey"`
	Client  string `json:"client"`
	MFACode string `json:"mfaCode"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	Client    string    `json:"client"`
}

// RegisterRoutes mounts the token endpoint behind its own per-IP limiter so
// API key guessing is throttled independently of the payroll routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RateLimit(tokenAttempts, time.Minute, middleware.WithKeyFunc(middleware.ClientIPKey))).
		Post("/auth/token", h.HandleToken)
}

func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	logger := requestctx.Logger(r.Context(), h.Logger)

	if !h.Service.Enabled() {
		api.Fail(w, http.StatusNotFound, "not_found", "token issuing is not configured", requestID)
		return
	}

	var payload tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	payload.Client = strings.TrimSpace(payload.Client)
	if payload.Client == "" {
		payload.Client = defaultClient
	}

	v := shared.NewValidator()
	v.Required("apiKey", payload.APIKey, "is required")
	if !clientPattern.MatchString(payload.Client) {
		v.Add("client", "must be 1-64 letters, digits, dots, dashes or underscores")
	}
	if v.Reject(w, requestID) {
		return
	}

	token, expires, err := h.Service.IssueToken(payload.Client, payload.APIKey, payload.MFACode)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidMFACode) {
			logger.Warn("token request failed mfa", "client", payload.Client)
			api.Fail(w, http.StatusUnauthorized, "mfa_required", "valid mfa code required", requestID)
			return
		}
		if errors.Is(err, auth.ErrInvalidAPIKey) {
			logger.Warn("token request rejected", "client", payload.Client)
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
			return
		}
		logger.Error("issue token failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "token_failed", "failed to issue token", requestID)
		return
	}

	logger.Info("token issued", "client", payload.Client, "expiresAt", expires)
	api.Success(w, tokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expires,
		Client:    payload.Client,
	}, requestID)
}
