package zoop

import (
	"context"
	"fmt"
	"strings"

	"integrationhub/internal/verification/extraction"
	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
)

const (
	// minNameMatchScore is the lowest Zoop name score accepted as a match.
	minNameMatchScore = 80

	panConsentText = "I hereby declare my consent agreement for fetching my information via ZOOP API"
)

// Verifier checks a claim against the Zoop PAN lite endpoint.
type Verifier struct {
	url   string
	creds Credentials
	opts  options
}

// NewVerifier creates the adapter. Missing url or credentials leave it unconfigured.
func NewVerifier(url string, creds Credentials, opts ...Option) *Verifier {
	return &Verifier{url: url, creds: creds, opts: buildOptions(opts)}
}

func (v *Verifier) ID() string { return VerifierID }

func (v *Verifier) Configured() bool {
	return v.url != "" && v.creds.complete()
}

type panTask struct {
	CustomerPANNumber string `json:"customer_pan_number"`
	PANHolderName     string `json:"pan_holder_name"`
	Consent           string `json:"consent"`
	ConsentText       string `json:"consent_text"`
}

func (v *Verifier) Attempt(ctx context.Context, in providers.Input) models.AttemptResult {
	if in.Claim == nil {
		return providers.Inconclusive(VerifierID, providers.NewProviderError(providers.ErrorBadData, VerifierID, "claim required", providers.ErrMissingInput))
	}
	pan := in.Claim.DocumentNumber()

	payload, _, perr := post(ctx, v.opts, VerifierID, v.url, v.creds, panTask{
		CustomerPANNumber: pan,
		PANHolderName:     strings.ToUpper(in.Claim.ClaimedName()),
		Consent:           "Y",
		ConsentText:       panConsentText,
	})
	if perr != nil {
		return providers.Inconclusive(VerifierID, perr)
	}

	result := providers.Object(payload, "result")
	if providers.String(payload["response_code"]) == "100" && providers.String(result["pan_status"]) == "VALID" {
		score := providers.Number(result["name_match_score"])
		if score < minNameMatchScore {
			v.opts.logger.WarnContext(ctx, "zoop name mismatch",
				"pan", extraction.MaskDocumentNumber(pan),
				"score", score,
			)
			return providers.Reject(VerifierID, fmt.Sprintf("Name match too low (%s%%)", providers.String(score)), payload)
		}

		v.opts.logger.InfoContext(ctx, "zoop accepted claim",
			"pan", extraction.MaskDocumentNumber(pan),
			"score", score,
		)
		return models.AttemptResult{
			ProviderID: VerifierID,
			Outcome:    models.OutcomeDefinitiveSuccess,
			RawPayload: payload,
			Fields: models.ExtractedFields{
				DocumentNumber: models.LabelMatched(providers.String(result["pan_number"])),
				Name:           models.LabelMatched(providers.String(result["name_on_card"])),
			},
			Details: map[string]any{
				"pan":                  result["pan_number"],
				"name":                 result["name_on_card"],
				"firstName":            result["user_first_name"],
				"middleName":           result["user_middle_name"],
				"lastName":             result["user_last_name"],
				"typeOfHolder":         result["pan_type"],
				"aadhaarSeedingStatus": result["aadhaar_seeding_status"],
				"nameMatchScore":       score,
			},
		}
	}

	message := providers.String(payload["response_message"])
	if message == "" {
		message = "PAN not valid"
	}
	v.opts.logger.WarnContext(ctx, "zoop rejected claim",
		"pan", extraction.MaskDocumentNumber(pan),
		"response_code", providers.String(payload["response_code"]),
		"message", message,
	)
	return providers.Reject(VerifierID, message, payload)
}
