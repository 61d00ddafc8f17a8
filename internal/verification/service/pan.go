package service

import (
	"context"
	"strings"

	"integrationhub/internal/verification/extraction"
	"integrationhub/internal/verification/integrity"
	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/orchestrator"
	"integrationhub/internal/verification/providers"
	dErrors "integrationhub/pkg/domain-errors"
)

// VerifyClaim checks a PAN and claimed name against the claim chain. Malformed
// input is rejected before any provider is contacted. An exhausted chain is a
// normal, unverified result.
func (s *Service) VerifyClaim(ctx context.Context, documentNumber, claimedName string) (models.CanonicalResult, error) {
	if number := strings.TrimSpace(documentNumber); !extraction.IsValidDocumentNumber(number) {
		s.logger.WarnContext(ctx, "rejected malformed PAN", "pan", extraction.MaskDocumentNumber(number))
		return models.CanonicalResult{}, dErrors.New(dErrors.CodeBadRequest, "Invalid PAN format")
	}
	claim, err := models.NewVerificationClaim(documentNumber, claimedName, "")
	if err != nil {
		return models.CanonicalResult{}, err
	}

	s.logger.InfoContext(ctx, "starting PAN verification",
		"pan", extraction.MaskDocumentNumber(claim.DocumentNumber()),
	)

	result := s.runner.Run(ctx, models.KindClaimVerification, s.chains.Claim, orchestrator.ContinueOnInconclusive, providers.Input{Claim: &claim})
	if result.Exhausted() {
		s.logger.ErrorContext(ctx, "PAN verification completely failed",
			"pan", extraction.MaskDocumentNumber(claim.DocumentNumber()),
		)
	}
	return result, nil
}

// ExtractFromImage reads identity fields from a PAN card image. The buffer must
// pass the signature check for its declared media type first.
func (s *Service) ExtractFromImage(ctx context.Context, artifact models.ImageArtifact) (models.CanonicalResult, error) {
	if len(artifact.Bytes) == 0 {
		return models.CanonicalResult{}, dErrors.New(dErrors.CodeBadRequest, "PAN image file is required")
	}
	if err := s.checkIntegrity(ctx, &artifact, "Invalid or unreadable PAN image"); err != nil {
		return models.CanonicalResult{}, err
	}

	s.logger.DebugContext(ctx, "OCR started",
		"size", len(artifact.Bytes),
		"filename", artifact.OriginalFilename,
		"width", artifact.Width,
		"height", artifact.Height,
	)

	result := s.runner.Run(ctx, models.KindImageExtraction, s.chains.Image, orchestrator.ContinueOnExtractionMiss, providers.Input{Image: &artifact})
	if !result.Exhausted() {
		s.logger.InfoContext(ctx, "PAN extracted",
			"provider", result.ProviderUsed,
			"pan", extraction.MaskDocumentNumber(result.Fields.DocumentNumber.Value),
		)
	}
	return result, nil
}

// checkIntegrity validates the buffer against its declared type and records the
// decoded dimensions on the artifact.
func (s *Service) checkIntegrity(ctx context.Context, artifact *models.ImageArtifact, message string) error {
	report := integrity.Inspect(artifact.Bytes, artifact.MediaType())
	if !report.Valid {
		s.metrics.IncrementIntegrityRejected(report.Declared)
		s.logger.WarnContext(ctx, "image failed integrity check",
			"declared", report.Declared,
			"detected", report.Detected,
			"size", len(artifact.Bytes),
		)
		return dErrors.New(dErrors.CodeValidation, message)
	}
	if report.Mismatch() {
		s.logger.WarnContext(ctx, "image content differs from declared type",
			"declared", report.Declared,
			"detected", report.Detected,
		)
	}
	artifact.Width, artifact.Height = report.Width, report.Height
	return nil
}
