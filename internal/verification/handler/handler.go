package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
	"integrationhub/internal/verification/providers/digitap"
)

//go:generate mockgen -source=handler.go -destination=mocks/service_mocks.go -package=mocks Service

// Service is the verification surface the handler drives.
type Service interface {
	VerifyClaim(ctx context.Context, documentNumber, claimedName string) (models.CanonicalResult, error)
	ExtractFromImage(ctx context.Context, artifact models.ImageArtifact) (models.CanonicalResult, error)
	ExtractCheque(ctx context.Context, artifact models.ImageArtifact, opts providers.ChequeOptions) (any, error)
	LookupGST(ctx context.Context, gstin string) (any, error)
	GenerateAadhaarOTP(ctx context.Context, aadhaarNumber string) (*digitap.OTPRequest, error)
	VerifyAadhaarOTP(ctx context.Context, requestID, otp string) (*digitap.Identity, error)
	AadhaarDetails(ctx context.Context, requestID string) (*digitap.Identity, error)
	VerifyOfflineAadhaar(ctx context.Context, xmlData string) (*digitap.Identity, error)
	GenerateKYCLink(ctx context.Context, in digitap.KYCLinkRequest) (*digitap.KYCLink, error)
	KYCDetails(ctx context.Context, transactionID string) (*digitap.KYCDetails, error)
}

// DefaultMaxUpload bounds multipart request bodies.
const DefaultMaxUpload = 10 << 20

// Handler serves the verification endpoints.
type Handler struct {
	service   Service
	logger    *slog.Logger
	maxUpload int64
}

type Option func(*Handler)

func WithMaxUpload(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUpload = n
		}
	}
}

// New creates a verification Handler.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service:   service,
		logger:    logger,
		maxUpload: DefaultMaxUpload,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the verification routes with the chi router. The caller
// installs the key gate and transaction logging on r.
func (h *Handler) Register(r chi.Router) {
	r.Post("/pan-verification/verify", h.handleVerifyPAN)
	r.Post("/pan-verification/validate", h.handleVerifyPAN)
	r.Post("/pan-verification/ocr", h.handlePANOCR("file"))
	r.Post("/ocr/v1/pan", h.handlePANOCR("imageUrl"))
	r.Post("/ocr/v1/cheque", h.handleChequeOCR)

	r.Post("/gst/verify", h.handleVerifyGST)

	r.Post("/aadhaar/generate-otp", h.handleGenerateOTP)
	r.Post("/aadhaar/verify-otp", h.handleVerifyOTP)
	r.Get("/aadhaar/details/{requestId}", h.handleAadhaarDetails)
	r.Post("/aadhaar/offline-verify", h.handleOfflineVerify)
	r.Post("/aadhaar/generate-kyc-link", h.handleGenerateKYCLink)
	r.Post("/aadhaar/kyc-details", h.handleKYCDetails)
}
