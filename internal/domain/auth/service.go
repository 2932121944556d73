package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"
)

var (
	ErrTokenIssuingDisabled = errors.New("token issuing is not configured")
	ErrInvalidAPIKey        = errors.New("invalid api key")
	ErrInvalidMFACode       = errors.New("invalid mfa code")
)

// Service exchanges a shared API key, plus a TOTP code when a TOTP secret is
// configured, for short-lived bearer tokens.
type Service struct {
	secret     string
	apiKeyHash string
	totpSecret string
	ttl        time.Duration
}

func NewService(secret, apiKeyHash, totpSecret string, ttl time.Duration) *Service {
	return &Service{
		secret:     secret,
		apiKeyHash: strings.TrimSpace(apiKeyHash),
		totpSecret: strings.TrimSpace(totpSecret),
		ttl:        ttl,
	}
}

func (s *Service) Enabled() bool {
	return s.secret != "" && s.apiKeyHash != ""
}

func (s *Service) MFARequired() bool {
	return s.totpSecret != ""
}

func (s *Service) IssueToken(client, apiKey, mfaCode string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrTokenIssuingDisabled
	}
	if err := CheckAPIKey(s.apiKeyHash, apiKey); err != nil {
		return "", time.Time{}, ErrInvalidAPIKey
	}
	if s.MFARequired() && !totp.Validate(strings.TrimSpace(mfaCode), s.totpSecret) {
		return "", time.Time{}, ErrInvalidMFACode
	}
	expires := time.Now().Add(s.ttl)
	token, err := GenerateToken(s.secret, Claims{Client: client}, s.ttl)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}
