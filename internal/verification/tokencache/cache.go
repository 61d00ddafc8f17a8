// Package tokencache keeps one short-lived bearer token per provider and
// refreshes it through a client-credentials exchange when it expires.
//
// There is no global lock. Each provider entry is an immutable CachedToken
// published with compare-and-swap, so concurrent refreshes may both reach the
// network but a reader never sees a token paired with the wrong expiry.
package tokencache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
)

const (
	// safetyMargin is subtracted from the server-declared lifetime.
	safetyMargin = 300 * time.Second
	// minValidity is the floor applied after the margin.
	minValidity = 60 * time.Second
)

// Grant is the result of one token exchange.
type Grant struct {
	AccessToken string
	// ExpiresIn is the server-declared lifetime; zero when the server sent none.
	ExpiresIn time.Duration
}

// Exchanger obtains a fresh token from a provider's token endpoint.
type Exchanger interface {
	Exchange(ctx context.Context) (Grant, error)
}

// Store persists one CachedToken per provider.
type Store interface {
	Load(ctx context.Context, providerID string) (*models.CachedToken, error)
	// CompareAndSwap replaces old with next only if the stored entry is still old.
	// A nil old means "no entry yet".
	CompareAndSwap(ctx context.Context, providerID string, old, next *models.CachedToken) (bool, error)
}

// Cache hands out bearer tokens per provider.
type Cache struct {
	store  Store
	now    func() time.Time
	logger *slog.Logger

	mu         sync.RWMutex
	exchangers map[string]Exchanger
}

// Option configures a Cache.
type Option func(*Cache)

// WithStore replaces the default in-memory store.
func WithStore(s Store) Option {
	return func(c *Cache) {
		c.store = s
	}
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// New creates a cache backed by a MemoryStore unless WithStore is given.
func New(opts ...Option) *Cache {
	c := &Cache{
		store:      NewMemoryStore(),
		now:        time.Now,
		logger:     slog.Default(),
		exchangers: make(map[string]Exchanger),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register binds the exchanger used to refresh providerID's token.
func (c *Cache) Register(providerID string, ex Exchanger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exchangers[providerID] = ex
}

// Token returns a valid token for providerID, exchanging for a new one when the
// cached token is missing or expired. Exchange failures are returned as an
// authentication ProviderError and are not retried.
func (c *Cache) Token(ctx context.Context, providerID string) (string, error) {
	now := c.now()

	current, err := c.store.Load(ctx, providerID)
	if err != nil {
		// A broken store degrades to exchanging on every call.
		c.logger.WarnContext(ctx, "token store load failed",
			"provider", providerID,
			"error", err,
		)
		current = nil
	}
	if current.ValidAt(now) {
		return current.Token, nil
	}

	c.mu.RLock()
	ex, ok := c.exchangers[providerID]
	c.mu.RUnlock()
	if !ok {
		return "", providers.NewProviderError(providers.ErrorConfigurationMissing, providerID, "no token exchanger registered", nil)
	}

	grant, err := ex.Exchange(ctx)
	if err != nil {
		return "", providers.NewProviderError(providers.ErrorAuthentication, providerID, "token exchange failed", err)
	}
	if grant.AccessToken == "" {
		return "", providers.NewProviderError(providers.ErrorAuthentication, providerID, "token exchange returned no token", nil)
	}

	next := &models.CachedToken{
		ProviderID: providerID,
		Token:      grant.AccessToken,
		ExpiresAt:  now.Add(Validity(grant.ExpiresIn)),
	}

	swapped, err := c.store.CompareAndSwap(ctx, providerID, current, next)
	switch {
	case err != nil:
		c.logger.WarnContext(ctx, "token store update failed",
			"provider", providerID,
			"error", err,
		)
	case !swapped:
		c.logger.DebugContext(ctx, "concurrent token refresh lost the race",
			"provider", providerID,
		)
	default:
		c.logger.DebugContext(ctx, "token refreshed",
			"provider", providerID,
			"expires_at", next.ExpiresAt,
		)
	}
	return next.Token, nil
}

// Validity applies the safety margin and floor to a server-declared lifetime.
func Validity(expiresIn time.Duration) time.Duration {
	return max(expiresIn-safetyMargin, minValidity)
}

// Key is the store key for providerID.
func Key(providerID string) string {
	return fmt.Sprintf("tokencache:%s", providerID)
}
