package finanalyz

import (
	"context"
	"log/slog"
	"net/http"

	"integrationhub/internal/verification/extraction"
	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
)

// OCR uploads a PAN card image to the Finanalyz document OCR endpoint.
type OCR struct {
	url    string
	apiKey string
	client *http.Client
	logger *slog.Logger
}

// NewOCR creates the adapter. An empty url or apiKey leaves it unconfigured.
func NewOCR(url, apiKey string, opts ...Option) *OCR {
	o := buildOptions(ocrTimeout, opts)
	return &OCR{
		url:    url,
		apiKey: apiKey,
		client: o.client,
		logger: o.logger,
	}
}

func (o *OCR) ID() string { return OCRID }

func (o *OCR) Configured() bool {
	return o.url != "" && o.apiKey != ""
}

func (o *OCR) Attempt(ctx context.Context, in providers.Input) models.AttemptResult {
	if in.Image == nil {
		return providers.Inconclusive(OCRID, providers.NewProviderError(providers.ErrorBadData, OCRID, "image required", providers.ErrMissingInput))
	}

	body, contentType, err := providers.NewForm().
		File("file", in.Image.Filename("pan.jpg"), in.Image.MediaType(), in.Image.Bytes).
		Close()
	if err != nil {
		return providers.Inconclusive(OCRID, providers.NewProviderError(providers.ErrorInternal, OCRID, "encode upload", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, body)
	if err != nil {
		return providers.Inconclusive(OCRID, providers.NewProviderError(providers.ErrorInternal, OCRID, "build request", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "*/*")
	req.Header.Set(apiKeyHeader, o.apiKey)

	resp, perr := providers.Do(o.client, OCRID, req)
	if perr != nil {
		return providers.Inconclusive(OCRID, perr)
	}
	if perr := providers.StatusFailure(OCRID, resp); perr != nil {
		return providers.Inconclusive(OCRID, perr)
	}

	var payload map[string]any
	if perr := providers.DecodeStructured(OCRID, resp, &payload); perr != nil {
		return providers.Inconclusive(OCRID, perr)
	}

	data := providers.Object(payload, "data")
	pan := providers.String(data["pan_number"])
	if pan == "" {
		o.logger.WarnContext(ctx, "finanalyz ocr did not detect PAN")
		return providers.ExtractionMiss(OCRID, "No valid PAN found", payload)
	}

	fields := models.ExtractedFields{
		DocumentNumber: models.LabelMatched(pan),
		Name:           models.LabelMatched(providers.String(data["name"])),
		DateOfBirth:    models.LabelMatched(providers.String(data["dob"])),
		GuardianName:   models.LabelMatched(providers.String(data["father_name"])),
	}
	o.logger.InfoContext(ctx, "finanalyz ocr extracted PAN",
		"pan", extraction.MaskDocumentNumber(pan),
	)
	return models.AttemptResult{
		ProviderID: OCRID,
		Outcome:    models.OutcomeDefinitiveSuccess,
		RawPayload: payload,
		Fields:     fields,
	}
}
