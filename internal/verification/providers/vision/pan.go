package vision

import (
	"context"

	"integrationhub/internal/verification/extraction"
	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
)

// PANAdapter reads a PAN card through Vision and the field extraction engine.
type PANAdapter struct {
	extractor *TextExtractor
	engine    *extraction.Engine
}

// NewPANAdapter creates the adapter. A nil extractor leaves it unconfigured.
func NewPANAdapter(extractor *TextExtractor, engine *extraction.Engine) *PANAdapter {
	if engine == nil {
		engine = extraction.NewDefault()
	}
	return &PANAdapter{extractor: extractor, engine: engine}
}

func (a *PANAdapter) ID() string { return ID }

func (a *PANAdapter) Configured() bool { return a.extractor != nil }

func (a *PANAdapter) Attempt(ctx context.Context, in providers.Input) models.AttemptResult {
	if in.Image == nil {
		return providers.Inconclusive(ID, providers.NewProviderError(providers.ErrorBadData, ID, "image required", providers.ErrMissingInput))
	}

	lines, err := a.extractor.Lines(ctx, in.Image.Bytes)
	if err != nil {
		a.extractor.logger.ErrorContext(ctx, "vision ocr failed", "error", err)
		return providers.Inconclusive(ID, classify(err))
	}

	fields := a.engine.Extract(lines)
	payment := extraction.IsPaymentDocument(lines)

	if fields.DocumentNumber.IsSet() && !payment {
		a.extractor.logger.InfoContext(ctx, "vision ocr extracted PAN",
			"pan", extraction.MaskDocumentNumber(fields.DocumentNumber.Value),
		)
		return models.AttemptResult{
			ProviderID: ID,
			Outcome:    models.OutcomeDefinitiveSuccess,
			RawPayload: lines,
			Fields:     fields,
		}
	}

	message := "No valid PAN found"
	if fields.DocumentNumber.IsSet() {
		message = "Payment doc detected"
	}
	a.extractor.logger.WarnContext(ctx, "vision ocr fallback trigger", "reason", message)

	result := providers.ExtractionMiss(ID, message, lines)
	result.Fields = fields
	result.PaymentDocument = payment
	return result
}
