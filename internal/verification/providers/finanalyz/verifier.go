package finanalyz

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"integrationhub/internal/verification/extraction"
	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
)

// Verifier checks a claim against the Finanalyz PAN validation endpoint.
type Verifier struct {
	url    string
	apiKey string
	client *http.Client
	logger *slog.Logger
}

// NewVerifier creates the adapter. An empty url or apiKey leaves it unconfigured.
func NewVerifier(url, apiKey string, opts ...Option) *Verifier {
	o := buildOptions(verifyTimeout, opts)
	return &Verifier{
		url:    url,
		apiKey: apiKey,
		client: o.client,
		logger: o.logger,
	}
}

func (v *Verifier) ID() string { return VerifierID }

func (v *Verifier) Configured() bool {
	return v.url != "" && v.apiKey != ""
}

type verifyRequest struct {
	PANNumber string `json:"panNumber"`
}

func (v *Verifier) Attempt(ctx context.Context, in providers.Input) models.AttemptResult {
	if in.Claim == nil {
		return providers.Inconclusive(VerifierID, providers.NewProviderError(providers.ErrorBadData, VerifierID, "claim required", providers.ErrMissingInput))
	}
	pan := in.Claim.DocumentNumber()

	body, err := json.Marshal(verifyRequest{PANNumber: pan})
	if err != nil {
		return providers.Inconclusive(VerifierID, providers.NewProviderError(providers.ErrorInternal, VerifierID, "encode request", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, bytes.NewReader(body))
	if err != nil {
		return providers.Inconclusive(VerifierID, providers.NewProviderError(providers.ErrorInternal, VerifierID, "build request", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, v.apiKey)

	resp, perr := providers.Do(v.client, VerifierID, req)
	if perr != nil {
		return providers.Inconclusive(VerifierID, perr)
	}
	if perr := providers.StatusFailure(VerifierID, resp); perr != nil {
		return providers.Inconclusive(VerifierID, perr)
	}

	var payload map[string]any
	if perr := providers.DecodeStructured(VerifierID, resp, &payload); perr != nil {
		return providers.Inconclusive(VerifierID, perr)
	}

	apiResp := providers.Object(payload, "data", "response")
	if providers.Number(apiResp["code"]) == http.StatusOK && apiResp["isValid"] == true {
		v.logger.InfoContext(ctx, "finanalyz accepted claim",
			"pan", extraction.MaskDocumentNumber(pan),
		)
		return models.AttemptResult{
			ProviderID: VerifierID,
			Outcome:    models.OutcomeDefinitiveSuccess,
			RawPayload: payload,
			Fields: models.ExtractedFields{
				DocumentNumber: models.LabelMatched(providers.String(apiResp["pan"])),
				Name:           models.LabelMatched(providers.String(apiResp["name"])),
				DateOfBirth:    models.LabelMatched(providers.String(apiResp["dob"])),
			},
			Details: verifiedDetails(apiResp),
		}
	}

	message := providers.String(apiResp["message"])
	if message == "" {
		message = "PAN verification failed"
	}
	v.logger.WarnContext(ctx, "finanalyz rejected claim",
		"pan", extraction.MaskDocumentNumber(pan),
		"message", message,
	)
	return providers.Reject(VerifierID, message, payload)
}

// verifiedDetails copies every field of the provider answer on top of the named
// identity fields. Finanalyz does not score names, so a match is reported as 100.
func verifiedDetails(apiResp map[string]any) map[string]any {
	details := map[string]any{
		"pan":        apiResp["pan"],
		"name":       apiResp["name"],
		"firstName":  apiResp["firstName"],
		"middleName": apiResp["middleName"],
		"lastName":   apiResp["lastName"],
		"gender":     apiResp["gender"],
		"dob":        apiResp["dob"],
	}
	for k, v := range apiResp {
		details[k] = v
	}
	details["nameMatchScore"] = 100
	return details
}
