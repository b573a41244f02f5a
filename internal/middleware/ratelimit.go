package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/repeatharmony/repeatharmony/internal/cache"
	"github.com/repeatharmony/repeatharmony/internal/metrics"
)

// LoginLimiter consumes one login attempt for a client IP.
type LoginLimiter interface {
	CheckLoginRateLimit(ctx context.Context, ip string, perMinute, burst int) (*cache.RateLimitResult, error)
}

var _ LoginLimiter = (*cache.Cache)(nil)

// LoginRateLimitConfig holds configuration for the login rate limiter.
type LoginRateLimitConfig struct {
	Logger    *slog.Logger
	Limiter   LoginLimiter
	Metrics   metrics.Recorder
	Enabled   bool
	PerMinute int
	Burst     int
	// OnLimited answers a refused attempt. Defaults to a 429 JSON body.
	OnLimited func(w http.ResponseWriter, r *http.Request, retryAfter time.Duration)
}

// RateLimitLogin returns middleware that limits login and signup attempts
// per client IP. Limiter failures let the request through.
func RateLimitLogin(cfg LoginRateLimitConfig) func(http.Handler) http.Handler {
	onLimited := cfg.OnLimited
	if onLimited == nil {
		onLimited = func(w http.ResponseWriter, _ *http.Request, retryAfter time.Duration) {
			writeRateLimitError(w, retryAfter)
		}
	}
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled || cfg.Limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)
			result, err := cfg.Limiter.CheckLoginRateLimit(r.Context(), ip, cfg.PerMinute, cfg.Burst)
			if err != nil {
				cfg.Logger.Error("login rate limit check failed", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				recorder.IncLoginRateLimited()
				cfg.Logger.Warn("login rate limit exceeded",
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.Int64("retry_after_seconds", int64(result.RetryAfter.Seconds())),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
				onLimited(w, r, result.RetryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeRateLimitError writes a 429 Too Many Requests response.
func writeRateLimitError(w http.ResponseWriter, retryAfter time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	msg := fmt.Sprintf(`{"error":"Too many sign in attempts. Retry after %d seconds.","code":"RATE_LIMITED"}`,
		int(retryAfter.Seconds()))
	_, _ = w.Write([]byte(msg))
}

// getClientIP returns the client host. Proxy headers are resolved by chi's
// RealIP middleware before this runs.
func getClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
