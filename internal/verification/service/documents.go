package service

import (
	"context"
	"strings"

	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/orchestrator"
	"integrationhub/internal/verification/providers"
	dErrors "integrationhub/pkg/domain-errors"
)

// gstinLength is the fixed length of an Indian GSTIN.
const gstinLength = 15

// ExtractCheque runs cheque OCR on the configured route. Provider failure
// answers are returned as data; only a route that produced nothing is an error.
func (s *Service) ExtractCheque(ctx context.Context, artifact models.ImageArtifact, opts providers.ChequeOptions) (any, error) {
	if len(artifact.Bytes) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Valid image file is required")
	}
	if s.chains.Cheque == nil {
		return nil, dErrors.New(dErrors.CodeUnavailable, "Cheque OCR not available")
	}
	if err := s.checkIntegrity(ctx, &artifact, "Valid image file is required"); err != nil {
		return nil, err
	}

	result := s.runner.Run(ctx, models.KindChequeExtraction, []providers.Adapter{s.chains.Cheque}, orchestrator.ContinueOnInconclusive, providers.Input{
		Image:  &artifact,
		Cheque: opts,
	})
	if result.Exhausted() {
		s.logger.ErrorContext(ctx, "cheque OCR failed", "client_ref_id", opts.ClientRefID)
		return nil, dErrors.New(dErrors.CodeBadRequest, result.Message)
	}
	return result.RawPayload, nil
}

// LookupGST fetches GSTIN details and returns the provider answer verbatim.
func (s *Service) LookupGST(ctx context.Context, gstin string) (any, error) {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if len(gstin) != gstinLength {
		return nil, dErrors.New(dErrors.CodeValidation, "GST number must be exactly 15 characters")
	}
	if s.chains.GST == nil {
		return nil, dErrors.New(dErrors.CodeUnavailable, "GST verification not available")
	}

	result := s.runner.Run(ctx, models.KindGSTLookup, []providers.Adapter{s.chains.GST}, orchestrator.ContinueOnInconclusive, providers.Input{GSTIN: gstin})
	switch {
	case result.Exhausted():
		return nil, dErrors.New(dErrors.CodeBadGateway, result.Message)
	case !result.Verified:
		return nil, dErrors.New(dErrors.CodeBadRequest, result.Message)
	default:
		return result.RawPayload, nil
	}
}
