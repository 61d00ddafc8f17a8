// Package service is the verification use-case layer. It validates caller
// input, picks the provider chain for each operation and hands the walk to
// the orchestrator. Provider identity never leaks into its control flow.
package service

import (
	"context"
	"log/slog"

	"integrationhub/internal/verification/metrics"
	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/orchestrator"
	"integrationhub/internal/verification/providers"
	"integrationhub/internal/verification/providers/digitap"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Runner,AadhaarClient

// Runner walks a provider chain.
type Runner interface {
	Run(ctx context.Context, kind models.OperationKind, chain []providers.Adapter, cont orchestrator.Continuation, in providers.Input) models.CanonicalResult
}

// AadhaarClient runs the Aadhaar OTP and DigiLocker KYC-link flows.
type AadhaarClient interface {
	Configured() bool
	GenerateOTP(ctx context.Context, aadhaarNumber string) (*digitap.OTPRequest, error)
	VerifyOTP(ctx context.Context, requestID, otp string) (*digitap.Identity, error)
	Details(ctx context.Context, requestID string) (*digitap.Identity, error)
	VerifyOffline(ctx context.Context, xmlData string) (*digitap.Identity, error)
	KYCConfigured() bool
	GenerateKYCLink(ctx context.Context, in digitap.KYCLinkRequest) (*digitap.KYCLink, error)
	KYCDetails(ctx context.Context, transactionID string) (*digitap.KYCDetails, error)
}

// Chains are the ordered adapters per operation.
type Chains struct {
	// Claim is tried in order for claim verification.
	Claim []providers.Adapter
	// Image is tried in order for PAN image extraction.
	Image []providers.Adapter
	// Cheque is the single cheque OCR route; see ChequeRoute.
	Cheque providers.Adapter
	GST    providers.Adapter
}

// Service implements the verification operations.
type Service struct {
	runner  Runner
	chains  Chains
	aadhaar AadhaarClient
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithAadhaar enables the Aadhaar flows.
func WithAadhaar(client AadhaarClient) Option {
	return func(s *Service) {
		s.aadhaar = client
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates the service.
func New(runner Runner, chains Chains, opts ...Option) *Service {
	s := &Service{
		runner: runner,
		chains: chains,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChequeRoute picks the cheque adapter once, at construction: the document OCR
// vendor when its credentials are present, else the vision fallback. There is
// no per-request fallback between the two.
func ChequeRoute(primary, fallback providers.Adapter) providers.Adapter {
	if primary != nil && primary.Configured() {
		return primary
	}
	return fallback
}

// ProviderStatus reports whether each distinct adapter has credentials.
func (s *Service) ProviderStatus() map[string]bool {
	status := make(map[string]bool)
	add := func(a providers.Adapter) {
		if a != nil {
			status[a.ID()] = status[a.ID()] || a.Configured()
		}
	}
	for _, a := range s.chains.Claim {
		add(a)
	}
	for _, a := range s.chains.Image {
		add(a)
	}
	add(s.chains.Cheque)
	add(s.chains.GST)
	if s.aadhaar != nil {
		status[digitap.AadhaarID] = s.aadhaar.Configured()
	}
	return status
}
