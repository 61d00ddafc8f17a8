// Package requestcontext carries request-scoped values from the HTTP
// middleware to the services, adapters and transaction log, none of which
// import net/http.
package requestcontext

import (
	"context"
	"time"
)

// Caller is the identity the key gate attached to the request.
type Caller struct {
	ID       string
	AuthType string
}

// Client is what the metadata middleware read off the connection.
type Client struct {
	IP        string
	UserAgent string
}

type (
	callerKey    struct{}
	clientKey    struct{}
	requestIDKey struct{}
	timeKey      struct{}
)

func value[T any](ctx context.Context, key any) (T, bool) {
	v, ok := ctx.Value(key).(T)
	return v, ok
}

// WithCaller records the authenticated caller.
func WithCaller(ctx context.Context, callerID, authType string) context.Context {
	return context.WithValue(ctx, callerKey{}, Caller{ID: callerID, AuthType: authType})
}

// CallerOf reports the caller and whether one with a non-empty ID was set.
func CallerOf(ctx context.Context) (Caller, bool) {
	c, ok := value[Caller](ctx, callerKey{})
	return c, ok && c.ID != ""
}

// CallerID returns the caller ID, or "unknown" for anonymous requests.
func CallerID(ctx context.Context) string {
	if c, ok := CallerOf(ctx); ok {
		return c.ID
	}
	return "unknown"
}

func AuthType(ctx context.Context) string {
	c, _ := value[Caller](ctx, callerKey{})
	return c.AuthType
}

func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	return context.WithValue(ctx, clientKey{}, Client{IP: clientIP, UserAgent: userAgent})
}

func ClientIP(ctx context.Context) string {
	c, _ := value[Client](ctx, clientKey{})
	return c.IP
}

func UserAgent(ctx context.Context) string {
	c, _ := value[Client](ctx, clientKey{})
	return c.UserAgent
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the correlation ID, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := value[string](ctx, requestIDKey{})
	return id
}

// WithTime pins the clock for everything downstream of the request.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, timeKey{}, t)
}

// Now returns the pinned request time, or the wall clock in workers and tests
// that never went through the middleware.
func Now(ctx context.Context) time.Time {
	if t, ok := value[time.Time](ctx, timeKey{}); ok {
		return t
	}
	return time.Now()
}
