package digitap

import (
	"context"
	"net/http"

	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
	"integrationhub/internal/verification/tokencache"
)

// Cheque uploads a cheque image to Digitap's OCR endpoint.
type Cheque struct {
	baseURL string
	creds   Credentials
	opts    options
}

// NewCheque creates the adapter. It is configured only when the base URL and
// both credentials are present.
func NewCheque(baseURL string, creds Credentials, opts ...Option) *Cheque {
	return &Cheque{baseURL: baseURL, creds: creds, opts: buildOptions(opts)}
}

func (c *Cheque) ID() string { return ChequeID }

func (c *Cheque) Configured() bool {
	return c.baseURL != "" && c.creds.complete()
}

func (c *Cheque) Attempt(ctx context.Context, in providers.Input) models.AttemptResult {
	if in.Image == nil {
		return providers.Inconclusive(ChequeID, providers.NewProviderError(providers.ErrorBadData, ChequeID, "image required", providers.ErrMissingInput))
	}

	completeImage := "no"
	if in.Cheque.CompleteImage {
		completeImage = "yes"
	}
	form := providers.NewForm().
		File("imageUrl", "cheque.jpg", in.Image.MediaType(), in.Image.Bytes).
		Field("clientRefId", in.Cheque.ClientRefID).
		Field("isCompleteImage", completeImage)
	if in.Cheque.AccountHolderName != "" {
		form.Field("accountHolderName", in.Cheque.AccountHolderName)
	}
	body, contentType, err := form.Close()
	if err != nil {
		return providers.Inconclusive(ChequeID, providers.NewProviderError(providers.ErrorInternal, ChequeID, "encode upload", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, join(c.baseURL, "/ocr/v1/cheque"), body)
	if err != nil {
		return providers.Inconclusive(ChequeID, providers.NewProviderError(providers.ErrorInternal, ChequeID, "build request", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Basic "+tokencache.BasicCredential(c.creds.ClientID, c.creds.ClientSecret))

	resp, perr := providers.Do(c.opts.client, ChequeID, req)
	if perr != nil {
		return providers.Inconclusive(ChequeID, perr)
	}

	var payload map[string]any
	if perr := providers.DecodeStructured(ChequeID, resp, &payload); perr != nil {
		return providers.Inconclusive(ChequeID, perr)
	}

	// A failure body is Digitap's verdict on the image whatever the HTTP status.
	if providers.String(payload["status"]) == "failure" {
		statusCode := int(providers.Number(payload["statusCode"]))
		if statusCode == 0 {
			statusCode = http.StatusBadRequest
		}
		message := providers.String(payload["error"])
		if message == "" {
			message = models.KindChequeExtraction.ExhaustedMessage()
		}
		c.opts.logger.WarnContext(ctx, "digitap cheque ocr failure",
			"client_ref_id", in.Cheque.ClientRefID,
			"ocr_req_id", providers.String(payload["ocrReqId"]),
			"error", message,
		)
		return providers.Reject(ChequeID, message, map[string]any{
			"status":      "failure",
			"statusCode":  statusCode,
			"error":       payload["error"],
			"ocrReqId":    payload["ocrReqId"],
			"clientRefId": payload["clientRefId"],
		})
	}

	if perr := providers.StatusFailure(ChequeID, resp); perr != nil {
		return providers.Inconclusive(ChequeID, perr)
	}
	if !resp.OK() {
		return providers.Inconclusive(ChequeID, providers.NewProviderError(providers.ErrorProviderOutage, ChequeID, "Digitap Cheque OCR failed", nil))
	}

	c.opts.logger.InfoContext(ctx, "digitap cheque ocr succeeded",
		"client_ref_id", in.Cheque.ClientRefID,
	)
	return models.AttemptResult{
		ProviderID: ChequeID,
		Outcome:    models.OutcomeDefinitiveSuccess,
		RawPayload: map[string]any{
			"status":     payload["status"],
			"statusCode": int(providers.Number(payload["statusCode"])),
			"result":     payload["result"],
		},
	}
}
