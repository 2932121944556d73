package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Addr               string        `env:"APP_ADDR" envDefault:":8080"`
	Environment        string        `env:"APP_ENV" envDefault:"development"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret          string        `env:"JWT_SECRET"`
	APIKeyHash         string        `env:"API_KEY_HASH"`
	TOTPSecret         string        `env:"TOTP_SECRET"`
	TokenTTL           time.Duration `env:"TOKEN_TTL" envDefault:"12h"`
	ScheduleFile       string        `env:"SCHEDULE_FILE"`
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES" envDefault:"65536"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	MetricsEnabled     bool          `env:"METRICS_ENABLED" envDefault:"true"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// AuthEnabled reports whether payroll routes require a bearer token.
func (c Config) AuthEnabled() bool {
	return strings.TrimSpace(c.JWTSecret) != ""
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c Config) Validate() error {
	if c.IsProduction() && !c.AuthEnabled() {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if strings.TrimSpace(c.APIKeyHash) != "" && !c.AuthEnabled() {
		return fmt.Errorf("API_KEY_HASH requires JWT_SECRET")
	}
	if strings.TrimSpace(c.TOTPSecret) != "" && strings.TrimSpace(c.APIKeyHash) == "" {
		return fmt.Errorf("TOTP_SECRET requires API_KEY_HASH")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
