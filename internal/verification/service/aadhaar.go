package service

import (
	"context"
	"errors"
	"strings"

	"integrationhub/internal/verification/providers"
	"integrationhub/internal/verification/providers/digitap"
	dErrors "integrationhub/pkg/domain-errors"
)

// GenerateAadhaarOTP starts an Aadhaar OTP verification.
func (s *Service) GenerateAadhaarOTP(ctx context.Context, aadhaarNumber string) (*digitap.OTPRequest, error) {
	if err := s.aadhaarReady(); err != nil {
		return nil, err
	}
	out, err := s.aadhaar.GenerateOTP(ctx, aadhaarNumber)
	if err != nil {
		return nil, providerFailure(err, "Failed to generate OTP")
	}
	return out, nil
}

// VerifyAadhaarOTP completes an Aadhaar OTP verification.
func (s *Service) VerifyAadhaarOTP(ctx context.Context, requestID, otp string) (*digitap.Identity, error) {
	if err := s.aadhaarReady(); err != nil {
		return nil, err
	}
	out, err := s.aadhaar.VerifyOTP(ctx, requestID, otp)
	if err != nil {
		return nil, providerFailure(err, "Failed to verify OTP")
	}
	return out, nil
}

// AadhaarDetails fetches the KYC record of a completed request.
func (s *Service) AadhaarDetails(ctx context.Context, requestID string) (*digitap.Identity, error) {
	if err := s.aadhaarReady(); err != nil {
		return nil, err
	}
	out, err := s.aadhaar.Details(ctx, requestID)
	if err != nil {
		return nil, providerFailure(err, "Failed to fetch Aadhaar details")
	}
	return out, nil
}

// VerifyOfflineAadhaar checks offline Aadhaar XML.
func (s *Service) VerifyOfflineAadhaar(ctx context.Context, xmlData string) (*digitap.Identity, error) {
	if err := s.aadhaarReady(); err != nil {
		return nil, err
	}
	out, err := s.aadhaar.VerifyOffline(ctx, xmlData)
	if err != nil {
		return nil, providerFailure(err, "Offline Aadhaar verification failed")
	}
	return out, nil
}

// GenerateKYCLink sends the customer a DigiLocker KYC link.
func (s *Service) GenerateKYCLink(ctx context.Context, in digitap.KYCLinkRequest) (*digitap.KYCLink, error) {
	if err := s.kycReady(); err != nil {
		return nil, err
	}
	out, err := s.aadhaar.GenerateKYCLink(ctx, in)
	if err != nil {
		return nil, providerFailure(err, "Failed to generate KYC link")
	}
	s.logger.InfoContext(ctx, "KYC link generated", "transaction_id", out.TransactionID)
	return out, nil
}

// KYCDetails fetches the DigiLocker details of a KYC-link transaction.
func (s *Service) KYCDetails(ctx context.Context, transactionID string) (*digitap.KYCDetails, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "transactionId is required")
	}
	if err := s.kycReady(); err != nil {
		return nil, err
	}
	out, err := s.aadhaar.KYCDetails(ctx, transactionID)
	if err != nil {
		return nil, providerFailure(err, "Failed to fetch KYC details")
	}
	return out, nil
}

func (s *Service) kycReady() error {
	if s.aadhaar == nil || !s.aadhaar.KYCConfigured() {
		return dErrors.New(dErrors.CodeUnavailable, "Digitap KYC credentials not configured")
	}
	return nil
}

func (s *Service) aadhaarReady() error {
	if s.aadhaar == nil || !s.aadhaar.Configured() {
		return dErrors.New(dErrors.CodeUnavailable, "Aadhaar verification not configured")
	}
	return nil
}

// providerFailure maps a provider error onto a domain error. Provider
// rejections keep their message; infrastructure failures do not.
func providerFailure(err error, fallback string) error {
	var perr *providers.ProviderError
	if !errors.As(err, &perr) {
		return dErrors.Wrap(err, dErrors.CodeInternal, fallback)
	}
	switch perr.Category {
	case providers.ErrorProviderRejected, providers.ErrorBadData:
		return dErrors.Wrap(err, dErrors.CodeBadRequest, perr.Message)
	case providers.ErrorAuthentication:
		return dErrors.Wrap(err, dErrors.CodeBadGateway, "Digitap authentication failed")
	case providers.ErrorTimeout, providers.ErrorProviderOutage:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, fallback)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, fallback)
	}
}
