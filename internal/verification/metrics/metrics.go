package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for provider chains.
type Metrics struct {
	// Attempt latencies by provider
	AttemptLatency *prometheus.HistogramVec

	// Attempt outcomes by provider and outcome
	AttemptOutcome *prometheus.CounterVec

	// Chains that ran dry, by operation kind
	ChainExhausted *prometheus.CounterVec

	// Circuit breaker transitions by provider and new state
	BreakerTransition *prometheus.CounterVec

	// Images failing the integrity check, by declared media type
	IntegrityRejected *prometheus.CounterVec
}

// New registers the verification metrics with reg. Pass a fresh registry in
// tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AttemptLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "integrationhub_provider_attempt_duration_seconds",
			Help:    "Duration of a single provider attempt",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"provider"}),

		AttemptOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "integrationhub_provider_attempts_total",
			Help: "Total provider attempts by outcome",
		}, []string{"provider", "outcome"}), // outcome: definitive_success, definitive_reject, inconclusive, skipped

		ChainExhausted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "integrationhub_chain_exhausted_total",
			Help: "Total provider chains that produced no definitive answer",
		}, []string{"kind"}),

		BreakerTransition: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "integrationhub_provider_breaker_transitions_total",
			Help: "Circuit breaker state changes by provider",
		}, []string{"provider", "state"}),

		IntegrityRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "integrationhub_image_integrity_rejected_total",
			Help: "Uploaded images rejected by the signature check",
		}, []string{"media_type"}),
	}
}

// ObserveAttempt records one provider attempt.
func (m *Metrics) ObserveAttempt(provider, outcome string, d time.Duration) {
	if m != nil {
		m.AttemptLatency.WithLabelValues(provider).Observe(d.Seconds())
		m.AttemptOutcome.WithLabelValues(provider, outcome).Inc()
	}
}

// IncrementSkipped records an adapter skipped without a network call.
func (m *Metrics) IncrementSkipped(provider string) {
	if m != nil {
		m.AttemptOutcome.WithLabelValues(provider, "skipped").Inc()
	}
}

// IncrementExhausted records a chain that ran dry.
func (m *Metrics) IncrementExhausted(kind string) {
	if m != nil {
		m.ChainExhausted.WithLabelValues(kind).Inc()
	}
}

// IncrementBreakerTransition records a circuit breaker state change.
func (m *Metrics) IncrementBreakerTransition(provider, state string) {
	if m != nil {
		m.BreakerTransition.WithLabelValues(provider, state).Inc()
	}
}

// IncrementIntegrityRejected records an image that failed the signature check.
func (m *Metrics) IncrementIntegrityRejected(mediaType string) {
	if m != nil {
		m.IntegrityRejected.WithLabelValues(mediaType).Inc()
	}
}
