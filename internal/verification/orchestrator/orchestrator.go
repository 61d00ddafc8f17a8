// Package orchestrator walks an ordered chain of provider adapters and turns
// the first decisive attempt into the canonical result.
//
// The walk is sequential. Adapters are never raced, retried or cancelled beyond
// the caller's context. Whether a result ends the walk is decided by a
// Continuation, so the same loop serves claim verification (stop on any
// definitive verdict) and OCR extraction (stop only on a usable document).
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"integrationhub/internal/verification/metrics"
	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
	"integrationhub/pkg/platform/circuit"
)

// Continuation reports whether the walk should move on after an attempt.
type Continuation func(models.AttemptResult) bool

// ContinueOnInconclusive is the claim verification policy: only transport-level
// failures move on; any definitive verdict, positive or negative, is final.
func ContinueOnInconclusive(r models.AttemptResult) bool {
	return r.Outcome == models.OutcomeInconclusive
}

// ContinueOnExtractionMiss is the OCR policy: move on unless the attempt
// succeeded with a document number on something that is not a payment receipt.
func ContinueOnExtractionMiss(r models.AttemptResult) bool {
	return r.Outcome != models.OutcomeDefinitiveSuccess ||
		!r.Fields.DocumentNumber.IsSet() ||
		r.PaymentDocument
}

// Orchestrator runs provider chains.
type Orchestrator struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	now     func() time.Time

	breakerOpts []circuit.Option
	useBreakers bool
	mu          sync.Mutex
	breakers    map[string]*circuit.Breaker
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithMetrics records attempt outcomes and latencies.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithTracer replaces the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) {
		o.tracer = t
	}
}

// WithClock injects the time source used for attempt durations.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithBreakers guards each provider with its own circuit breaker. While a
// breaker is open its adapter is skipped as inconclusive.
func WithBreakers(opts ...circuit.Option) Option {
	return func(o *Orchestrator) {
		o.useBreakers = true
		o.breakerOpts = opts
	}
}

// New creates an orchestrator.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:   slog.Default(),
		tracer:   otel.Tracer("integrationhub/verification/orchestrator"),
		now:      time.Now,
		breakers: make(map[string]*circuit.Breaker),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run walks chain in order. Unconfigured adapters are skipped. The walk stops
// at the first attempt for which cont returns false and that attempt becomes
// the result. A chain that runs dry yields ProviderUsed "NONE" with the
// aggregate message for kind.
func (o *Orchestrator) Run(ctx context.Context, kind models.OperationKind, chain []providers.Adapter, cont Continuation, in providers.Input) models.CanonicalResult {
	attempts := make([]models.AttemptSummary, 0, len(chain))

	for _, adapter := range chain {
		id := adapter.ID()

		if skip, reason := o.skip(adapter); skip {
			o.logger.DebugContext(ctx, "provider skipped",
				"provider", id,
				"kind", string(kind),
				"reason", reason,
			)
			o.metrics.IncrementSkipped(id)
			summary := providers.Skipped(id, reason).Summarize()
			summary.Skipped = true
			attempts = append(attempts, summary)
			continue
		}

		result := o.attempt(ctx, kind, adapter, in)
		attempts = append(attempts, result.Summarize())

		if !cont(result) {
			return models.CanonicalResult{
				Verified:     result.Outcome == models.OutcomeDefinitiveSuccess,
				ProviderUsed: result.ProviderID,
				Fields:       result.Fields,
				Details:      result.Details,
				Message:      result.Message,
				RawPayload:   result.RawPayload,
				Attempts:     attempts,
			}
		}
	}

	o.logger.WarnContext(ctx, "provider chain exhausted",
		"kind", string(kind),
		"attempts", len(attempts),
	)
	o.metrics.IncrementExhausted(string(kind))
	return models.CanonicalResult{
		Verified:     false,
		ProviderUsed: models.ProviderNone,
		Message:      kind.ExhaustedMessage(),
		Attempts:     attempts,
	}
}

func (o *Orchestrator) skip(adapter providers.Adapter) (bool, providers.ErrorCategory) {
	if !adapter.Configured() {
		return true, providers.ErrorConfigurationMissing
	}
	if b := o.breaker(adapter.ID()); b != nil && !b.Allow() {
		return true, providers.ErrorProviderOutage
	}
	return false, ""
}

// attempt runs one adapter inside a span and records its outcome.
func (o *Orchestrator) attempt(ctx context.Context, kind models.OperationKind, adapter providers.Adapter, in providers.Input) models.AttemptResult {
	id := adapter.ID()
	ctx, span := o.tracer.Start(ctx, "provider.attempt", trace.WithAttributes(
		attribute.String("provider.id", id),
		attribute.String("operation.kind", string(kind)),
	))
	defer span.End()

	start := o.now()
	result := safeAttempt(ctx, adapter, in)
	result.Duration = o.now().Sub(start)
	if result.ProviderID == "" {
		result.ProviderID = id
	}

	span.SetAttributes(attribute.String("provider.outcome", result.Outcome.String()))
	if result.Outcome == models.OutcomeInconclusive && result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, string(providers.GetCategory(result.Err)))
	}

	o.record(ctx, id, result)
	o.metrics.ObserveAttempt(id, result.Outcome.String(), result.Duration)

	logArgs := []any{
		"provider", id,
		"kind", string(kind),
		"outcome", result.Outcome.String(),
		"duration_ms", result.Duration.Milliseconds(),
	}
	if result.Err != nil {
		logArgs = append(logArgs, "error", result.Err.Error())
	}
	o.logger.InfoContext(ctx, "provider attempt", logArgs...)
	return result
}

// safeAttempt records an adapter panic as an internal, inconclusive failure.
func safeAttempt(ctx context.Context, adapter providers.Adapter, in providers.Input) (result models.AttemptResult) {
	defer func() {
		if r := recover(); r != nil {
			result = providers.Inconclusive(adapter.ID(), providers.NewProviderError(
				providers.ErrorInternal, adapter.ID(), "adapter panicked", fmt.Errorf("%v", r)))
		}
	}()
	return adapter.Attempt(ctx, in)
}

// record feeds the breaker. Timeouts, outages and credential failures count
// against the provider; any definitive answer counts for it.
func (o *Orchestrator) record(ctx context.Context, id string, result models.AttemptResult) {
	b := o.breaker(id)
	if b == nil {
		return
	}

	var change circuit.StateChange
	if result.Outcome.IsDefinitive() {
		_, change = b.RecordSuccess()
	} else {
		switch providers.GetCategory(result.Err) {
		case providers.ErrorTimeout, providers.ErrorProviderOutage, providers.ErrorAuthentication:
			_, change = b.RecordFailure()
		}
	}

	switch {
	case change.Opened:
		o.logger.WarnContext(ctx, "provider circuit opened", "provider", id)
		o.metrics.IncrementBreakerTransition(id, circuit.StateOpen.String())
	case change.Closed:
		o.logger.InfoContext(ctx, "provider circuit closed", "provider", id)
		o.metrics.IncrementBreakerTransition(id, circuit.StateClosed.String())
	}
}

func (o *Orchestrator) breaker(id string) *circuit.Breaker {
	if !o.useBreakers {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	b, ok := o.breakers[id]
	if !ok {
		b = circuit.New(id, o.breakerOpts...)
		o.breakers[id] = b
	}
	return b
}

// BreakerStates reports the state of every breaker created so far.
func (o *Orchestrator) BreakerStates() map[string]string {
	o.mu.Lock()
	defer o.mu.Unlock()
	states := make(map[string]string, len(o.breakers))
	for _, b := range o.breakers {
		states[b.Name()] = b.State().String()
	}
	return states
}
