// Package ratelimit caps how many calls one caller may make within a sliding
// window. Counters live in memory or, when several replicas run, in Redis.
package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"integrationhub/pkg/platform/httputil"
	"integrationhub/pkg/requestcontext"
)

// Result is the outcome of one check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int
}

// Store counts requests per key over a sliding window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// Limiter applies one limit to every caller.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	logger *slog.Logger
}

func New(store Store, limit int, window time.Duration, logger *slog.Logger) *Limiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Limiter{store: store, limit: limit, window: window, logger: logger}
}

// Key identifies the caller: the authenticated identity plus the client IP,
// so callers sharing an API key are still counted apart.
func Key(ctx context.Context) string {
	return requestcontext.CallerID(ctx) + "|" + requestcontext.ClientIP(ctx)
}

// Middleware rejects calls over the limit with 429. A failing store lets the
// call through.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := l.store.Allow(ctx, Key(ctx), l.limit, l.window)
		if err != nil {
			l.logger.ErrorContext(ctx, "failed to check rate limit", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		addHeaders(w, result)
		if !result.Allowed {
			l.logger.WarnContext(ctx, "rate limit exceeded",
				"caller_id", requestcontext.CallerID(ctx),
				"path", r.URL.Path,
			)
			writeExceeded(w, result)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func addHeaders(w http.ResponseWriter, result *Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeExceeded(w http.ResponseWriter, result *Result) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.Envelope{
		Success: false,
		Message: "Too many requests. Please try again later.",
		Error:   "rate_limit_exceeded",
	})
}

// retryAfter rounds the wait until resetAt up to whole seconds, at least one.
func retryAfter(now, resetAt time.Time) int {
	d := resetAt.Sub(now)
	secs := int((d + time.Second - 1) / time.Second)
	return max(secs, 1)
}
