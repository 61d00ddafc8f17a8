// Package health reports whether the hub and its backing services are up.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"integrationhub/pkg/platform/httputil"
)

const (
	StatusUp       = "UP"
	StatusDown     = "DOWN"
	StatusDegraded = "DEGRADED"

	defaultTimeout = 3 * time.Second
)

// Check probes one backing service.
type Check func(ctx context.Context) error

// Checker runs every registered check in parallel.
type Checker struct {
	names     []string
	checks    map[string]Check
	providers func() map[string]bool
	breakers  func() map[string]string
	timeout   time.Duration
	started   time.Time
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Checker)

// WithCheck registers a named probe. A nil check is ignored so optional
// backends can be passed unconditionally.
func WithCheck(name string, check Check) Option {
	return func(c *Checker) {
		if check == nil {
			return
		}
		if _, dup := c.checks[name]; !dup {
			c.names = append(c.names, name)
		}
		c.checks[name] = check
	}
}

// WithProviders reports per-provider configuration in every response.
func WithProviders(fn func() map[string]bool) Option {
	return func(c *Checker) { c.providers = fn }
}

// WithBreakers adds per-provider circuit states to the detailed report.
func WithBreakers(fn func() map[string]string) Option {
	return func(c *Checker) { c.breakers = fn }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(c *Checker) { c.now = now }
}

func New(opts ...Option) *Checker {
	c := &Checker{
		checks:  make(map[string]Check),
		timeout: defaultTimeout,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.started = c.now()
	return c
}

// Report is the body of GET /health.
type Report struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Providers map[string]bool   `json:"providers,omitempty"`
}

// Check runs all probes concurrently. The API itself is always UP; any failed
// probe makes the overall status DEGRADED.
func (c *Checker) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		services = map[string]string{"api": StatusUp}
		g        errgroup.Group
	)
	for _, name := range c.names {
		check := c.checks[name]
		g.Go(func() error {
			status := StatusUp
			if err := check(ctx); err != nil {
				status = StatusDown
				c.logger.WarnContext(ctx, "health check failed", "service", name, "error", err)
			}
			mu.Lock()
			services[name] = status
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	report := Report{
		Status:    StatusUp,
		Timestamp: c.now().UTC(),
		Services:  services,
	}
	for _, s := range services {
		if s != StatusUp {
			report.Status = StatusDegraded
		}
	}
	if c.providers != nil {
		report.Providers = c.providers()
	}
	return report
}

// Detailed is the body of GET /health/detailed.
type Detailed struct {
	Status        string            `json:"status"`
	Timestamp     string            `json:"timestamp"`
	UptimeSeconds float64           `json:"uptime"`
	Goroutines    int               `json:"goroutines"`
	Memory        Memory            `json:"memory"`
	Breakers      map[string]string `json:"breakers,omitempty"`
}

// Memory is a subset of runtime.MemStats.
type Memory struct {
	HeapAlloc  uint64 `json:"heapAlloc"`
	HeapInuse  uint64 `json:"heapInuse"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"numGC"`
	TotalAlloc uint64 `json:"totalAlloc"`
}

func (c *Checker) Detailed() Detailed {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	now := c.now()
	d := Detailed{
		Status:        StatusUp,
		Timestamp:     now.UTC().Format(time.RFC3339),
		UptimeSeconds: now.Sub(c.started).Seconds(),
		Goroutines:    runtime.NumGoroutine(),
		Memory: Memory{
			HeapAlloc:  ms.HeapAlloc,
			HeapInuse:  ms.HeapInuse,
			Sys:        ms.Sys,
			NumGC:      ms.NumGC,
			TotalAlloc: ms.TotalAlloc,
		},
	}
	if c.breakers != nil {
		d.Breakers = c.breakers()
	}
	return d
}

// Handler serves the health endpoints.
type Handler struct {
	checker *Checker
}

func NewHandler(checker *Checker) *Handler {
	return &Handler{checker: checker}
}

// RegisterPublic mounts GET /health.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

// RegisterDetailed mounts GET /health/detailed; callers put it behind the key gate.
func (h *Handler) RegisterDetailed(r chi.Router) {
	r.Get("/health/detailed", h.handleDetailed)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := h.checker.Check(r.Context())
	message := "Service is healthy"
	if report.Status != StatusUp {
		message = "Service is degraded"
	}
	httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{
		Success: true,
		Message: message,
		Data:    report,
	})
}

func (h *Handler) handleDetailed(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{
		Success: true,
		Message: "Detailed health check",
		Data:    h.checker.Detailed(),
	})
}
