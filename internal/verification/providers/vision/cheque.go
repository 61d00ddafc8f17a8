package vision

import (
	"context"
	"net/http"

	"integrationhub/internal/verification/extraction"
	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
)

// chequeConfidence is reported for every heuristic cheque field.
const chequeConfidence = 0.9

// ChequeAdapter reads a cheque through Vision and the cheque heuristics. Its
// answer has the same shape as the Digitap cheque OCR response.
type ChequeAdapter struct {
	extractor *TextExtractor
}

// NewChequeAdapter creates the adapter. A nil extractor leaves it unconfigured.
func NewChequeAdapter(extractor *TextExtractor) *ChequeAdapter {
	return &ChequeAdapter{extractor: extractor}
}

func (a *ChequeAdapter) ID() string { return ID }

func (a *ChequeAdapter) Configured() bool { return a.extractor != nil }

func (a *ChequeAdapter) Attempt(ctx context.Context, in providers.Input) models.AttemptResult {
	if in.Image == nil {
		return providers.Inconclusive(ID, providers.NewProviderError(providers.ErrorBadData, ID, "image required", providers.ErrMissingInput))
	}

	lines, err := a.extractor.Lines(ctx, in.Image.Bytes)
	if err != nil {
		a.extractor.logger.ErrorContext(ctx, "vision cheque ocr failed", "error", err)
		return providers.Inconclusive(ID, classify(err))
	}

	parsed := extraction.ParseCheque(lines)
	return models.AttemptResult{
		ProviderID: ID,
		Outcome:    models.OutcomeDefinitiveSuccess,
		RawPayload: ChequeResponse(parsed),
	}
}

// ChequeResponse renders heuristic cheque fields in the Digitap response shape.
func ChequeResponse(f extraction.ChequeFields) map[string]any {
	field := func(v string) map[string]any {
		return map[string]any{"conf": chequeConfidence, "value": v}
	}
	return map[string]any{
		"status":     "success",
		"statusCode": http.StatusOK,
		"result": []any{
			map[string]any{
				"type": "cheque",
				"details": map[string]any{
					"account_number": field(f.AccountNumber),
					"ifsc_code":      field(f.IFSC),
					"cheque_number":  field(f.ChequeNumber),
					"date":           field(f.Date),
					"amount":         field(f.Amount),
					"payee_name":     field(f.PayeeName),
					"bank_name":      field(f.BankName),
				},
			},
		},
	}
}
