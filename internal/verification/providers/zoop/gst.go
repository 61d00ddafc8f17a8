package zoop

import (
	"context"
	"strings"

	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
)

const (
	gstFinancialYear = "2024-25"
	gstConsentText   = "I hereby declare my consent agreement for fetching my information via ZOOP API."
)

// GST looks up a GSTIN and passes the Zoop answer through.
type GST struct {
	url   string
	creds Credentials
	opts  options
}

// NewGST creates the adapter. Missing url or credentials leave it unconfigured.
func NewGST(url string, creds Credentials, opts ...Option) *GST {
	return &GST{url: url, creds: creds, opts: buildOptions(opts)}
}

func (g *GST) ID() string { return GSTID }

func (g *GST) Configured() bool {
	return g.url != "" && g.creds.complete()
}

type gstTask struct {
	BusinessGSTINNumber string `json:"business_gstin_number"`
	ContactInfo         bool   `json:"contact_info"`
	FinancialYear       string `json:"financial_year"`
	Consent             string `json:"consent"`
	ConsentText         string `json:"consent_text"`
}

func (g *GST) Attempt(ctx context.Context, in providers.Input) models.AttemptResult {
	if in.GSTIN == "" {
		return providers.Inconclusive(GSTID, providers.NewProviderError(providers.ErrorBadData, GSTID, "GSTIN required", providers.ErrMissingInput))
	}
	gstin := strings.ToUpper(in.GSTIN)

	payload, status, perr := post(ctx, g.opts, GSTID, g.url, g.creds, gstTask{
		BusinessGSTINNumber: gstin,
		ContactInfo:         true,
		FinancialYear:       gstFinancialYear,
		Consent:             "Y",
		ConsentText:         gstConsentText,
	})
	if perr != nil {
		g.opts.logger.ErrorContext(ctx, "GST verification failed",
			"gstin", gstin,
			"error", perr,
		)
		return providers.Inconclusive(GSTID, perr)
	}

	if status < 200 || status >= 300 {
		message := providers.String(payload["response_message"])
		if message == "" {
			message = models.KindGSTLookup.ExhaustedMessage()
		}
		return providers.Reject(GSTID, message, payload)
	}

	// Zoop reports its own verdict inside the body; callers get it verbatim.
	g.opts.logger.InfoContext(ctx, "zoop gst lookup answered",
		"gstin", gstin,
		"response_code", providers.String(payload["response_code"]),
	)
	return models.AttemptResult{
		ProviderID: GSTID,
		Outcome:    models.OutcomeDefinitiveSuccess,
		RawPayload: payload,
		Details:    providers.Object(payload, "result"),
		Message:    providers.String(payload["response_message"]),
	}
}
