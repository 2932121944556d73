package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"paie/internal/domain/auth"
	"paie/internal/domain/payroll"
	"paie/internal/platform/config"
	"paie/internal/platform/metrics"
	"paie/internal/transport/http/api"
	authhandler "paie/internal/transport/http/handlers/auth"
	payrollhandler "paie/internal/transport/http/handlers/payroll"
	"paie/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.Collector
	Payroll *payroll.Service
	Router  http.Handler
}

// NewLogger builds the JSON logger used by the server.
func NewLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// New validates cfg, loads the contribution schedule and wires the router.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	schedule := payroll.DefaultSchedule()
	if cfg.ScheduleFile != "" {
		loaded, err := payroll.LoadScheduleFile(cfg.ScheduleFile)
		if err != nil {
			return nil, fmt.Errorf("load schedule: %w", err)
		}
		schedule = loaded
		logger.Info("schedule loaded",
			"path", cfg.ScheduleFile,
			"employee", len(schedule.Employee),
			"employer", len(schedule.Employer),
		)
	}

	collector := metrics.New()
	payrollService := payroll.NewService(schedule, logger, collector)
	authService := auth.NewService(cfg.JWTSecret, cfg.APIKeyHash, cfg.TOTPSecret, cfg.TokenTTL)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger, collector))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authService, logger)
		authHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireClient(cfg.AuthEnabled()))
			r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

			payrollHandler := payrollhandler.NewHandler(payrollService, logger, cfg.MaxBodyBytes, collector)
			payrollHandler.RegisterRoutes(r)
		})
	})

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: collector,
		Payroll: payrollService,
		Router:  router,
	}, nil
}

// Run serves the API until ctx is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests for at most SHUTDOWN_TIMEOUT.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := NewLogger(os.Stdout, cfg)
	slog.SetDefault(logger)

	app, err := New(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("paie server listening",
			"addr", cfg.Addr,
			"env", cfg.Environment,
			"auth", cfg.AuthEnabled(),
			"mfa", authEnabledWithMFA(cfg),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func authEnabledWithMFA(cfg config.Config) bool {
	return cfg.AuthEnabled() && cfg.TOTPSecret != ""
}
