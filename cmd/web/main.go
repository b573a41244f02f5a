// Package main is the entrypoint for the RepeatHarmony web server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/repeatharmony/repeatharmony/internal/auth"
	"github.com/repeatharmony/repeatharmony/internal/cache"
	"github.com/repeatharmony/repeatharmony/internal/config"
	"github.com/repeatharmony/repeatharmony/internal/flash"
	"github.com/repeatharmony/repeatharmony/internal/guard"
	"github.com/repeatharmony/repeatharmony/internal/handler"
	"github.com/repeatharmony/repeatharmony/internal/metrics"
	"github.com/repeatharmony/repeatharmony/internal/middleware"
	"github.com/repeatharmony/repeatharmony/internal/repository"
	"github.com/repeatharmony/repeatharmony/internal/server"
	"github.com/repeatharmony/repeatharmony/internal/sessionstore"
	"github.com/repeatharmony/repeatharmony/internal/view"
)

const (
	// sweepInterval is how often idle browser sessions are dropped from memory.
	sweepInterval = 5 * time.Minute
	// sessionIdle is how long an unused session stays in memory.
	// The persisted record outlives it.
	sessionIdle = 30 * time.Minute
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Initialize authenticator
	var (
		authenticator auth.Authenticator = auth.Simulated{Latency: cfg.AuthSimulatedLatency}
		repo          *repository.Repository
	)
	if cfg.UsesCredentials() {
		repo, err = repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to database")

		if err := repo.Migrate(ctx); err != nil {
			logger.Error("failed to migrate database", slog.String("error", sanitizeError(err, cfg.DatabaseURL)))
			os.Exit(1)
		}

		authenticator, err = auth.NewAccounts(repo, auth.DefaultHashParams)
		if err != nil {
			logger.Error("failed to initialize accounts", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	logger.Info("authentication configured", slog.String("mode", cfg.AuthMode))

	// Initialize sessions
	metricsRecorder := metrics.NewInMemory()
	cookie := auth.NewBrowserCookie([]byte(cfg.SessionSecret), !cfg.IsDevelopment(), cfg.SessionTTL)
	registry := auth.NewRegistry(cookie, auth.Deps{
		Store:         sessionstore.New(cacheClient, cfg.SessionTTL),
		Authenticator: authenticator,
		Logger:        logger,
		Metrics:       metricsRecorder,
	})

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		registry.RunSweeper(sweepCtx, sweepInterval, sessionIdle)
	}()

	// Initialize views
	renderer, err := view.New()
	if err != nil {
		logger.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Setup router
	r := setupRouter(app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		renderer: renderer,
		metrics:  metricsRecorder,
		limiter:  cacheClient,
		redis:    cacheClient,
		postgres: repo,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// Registered first, closed last.
	srv.OnShutdown("redis", func(context.Context) error {
		return cacheClient.Close()
	})
	if repo != nil {
		srv.OnShutdown("postgres", func(context.Context) error {
			repo.Close()
			return nil
		})
	}
	srv.OnShutdown("session-sweeper", func(ctx context.Context) error {
		stopSweeper()
		select {
		case <-sweeperDone:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// app carries the dependencies the router needs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *auth.Registry
	renderer *view.Renderer
	metrics  *metrics.InMemoryRecorder
	limiter  middleware.LoginLimiter
	redis    handler.HealthChecker
	// postgres is nil outside credentials mode.
	postgres *repository.Repository
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(a app) *chi.Mux {
	flashWriter := flash.Writer{Secure: !a.cfg.IsDevelopment()}
	pages := &view.Responder{Renderer: a.renderer, Flash: flashWriter, Logger: a.logger}
	g := guard.New(a.registry, pages, a.metrics, a.logger)

	var postgres handler.HealthChecker
	if a.postgres != nil {
		postgres = a.postgres
	}

	h := handler.New(a.registry, pages, flashWriter, a.logger)
	authHandler := handler.NewAuthHandler(a.registry, flashWriter, a.logger)
	sessionHandler := handler.NewSessionHandler(a.registry, a.logger)
	healthHandler := handler.NewHealthHandler(a.redis, postgres)
	metricsHandler := handler.NewMetricsHandler(a.metrics)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(a.logger))
	r.Use(middleware.Recoverer(a.logger, a.cfg.IsDevelopment()))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: a.cfg.IsDevelopment()}))
	r.Use(middleware.MaxBodySize(a.cfg.MaxRequestBodySize))

	// Health endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	// Public pages
	public := guard.DefaultOptions()
	public.RequireAuth = false
	r.Method(http.MethodGet, "/", g.Protect(public, h.Landing))
	r.Get("/get-started", h.GetStarted)
	r.Get("/learn-more", h.LearnMore)
	r.Get("/explore/{feature}", h.Explore)
	r.Get("/view-dashboard", h.ViewDashboard)
	r.Post("/newsletter", h.Newsletter)
	r.Post("/testimonials/{id}/like", h.ToggleLike)

	// Protected pages
	for _, page := range handler.ProtectedPages {
		r.Method(http.MethodGet, page.Path, g.Protect(guard.DefaultOptions(), h.Protected(page)))
	}

	// Session forms
	r.Route("/auth", func(r chi.Router) {
		limited := r.With(middleware.RateLimitLogin(middleware.LoginRateLimitConfig{
			Logger:    a.logger,
			Limiter:   a.limiter,
			Metrics:   a.metrics,
			Enabled:   a.cfg.LoginRateLimitEnabled,
			PerMinute: a.cfg.LoginRateLimitPerMinute,
			Burst:     a.cfg.LoginRateLimitBurst,
			OnLimited: authHandler.RateLimited,
		}))
		limited.Post("/login", authHandler.Login)
		limited.Post("/signup", authHandler.Signup)
		r.Post("/logout", authHandler.Logout)
	})

	// JSON API
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/session", sessionHandler.Get)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
