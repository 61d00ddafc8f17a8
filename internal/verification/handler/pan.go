package handler

import (
	"net/http"
	"strings"

	"integrationhub/internal/verification/extraction"
	"integrationhub/internal/verification/models"
	"integrationhub/pkg/platform/httputil"
)

const exhaustedClaimMessage = "Both verification providers failed (check logs for details)"

// handleVerifyPAN serves both /verify and /validate. Blank and malformed
// values that pass the required check are rejected by the service.
func (h *Handler) handleVerifyPAN(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndValidate[VerifyPANRequest](w, r, h.logger)
	if !ok {
		return
	}
	h.verifyClaim(w, r, req)
}

func (h *Handler) verifyClaim(w http.ResponseWriter, r *http.Request, req *VerifyPANRequest) {
	ctx := r.Context()
	result, err := h.service.VerifyClaim(ctx, req.PANNumber, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "PAN verification rejected",
			"pan", extraction.MaskDocumentNumber(strings.ToUpper(strings.TrimSpace(req.PANNumber))),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	view := ClaimView{
		Success:  !result.Exhausted(),
		Verified: result.Verified,
		Provider: result.ProviderUsed,
		Details:  result.Details,
		Message:  result.Message,
		Attempts: result.Attempts,
	}
	if result.Exhausted() {
		view.Message = exhaustedClaimMessage
	}
	httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{
		Success:  view.Success,
		Message:  view.Message,
		Data:     view,
		Provider: view.Provider,
	})
}

// handlePANOCR serves both PAN upload routes; they differ only in the
// multipart field carrying the image.
func (h *Handler) handlePANOCR(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		artifact, _, err := h.readUpload(w, r, field)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		result, err := h.service.ExtractFromImage(ctx, artifact)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		if result.Exhausted() {
			httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{
				Success:  false,
				Message:  "Failed to extract PAN",
				Data:     OCRView{Provider: result.ProviderUsed, Error: result.Message},
				Provider: result.ProviderUsed,
			})
			return
		}
		httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{
			Success:  true,
			Message:  "PAN extracted successfully",
			Data:     OCRView{Provider: result.ProviderUsed, Response: ocrResponse(result)},
			Provider: result.ProviderUsed,
		})
	}
}

// ocrResponse passes a structured vendor body through and renders fields
// recovered from line text in the same shape.
func ocrResponse(result models.CanonicalResult) any {
	if body, ok := result.RawPayload.(map[string]any); ok {
		return body
	}
	f := result.Fields
	return map[string]any{
		"data": map[string]any{
			"pan_number":  f.DocumentNumber.Value,
			"name":        f.Name.Value,
			"dob":         f.DateOfBirth.Value,
			"father_name": f.GuardianName.Value,
		},
		"doc_Name": "PAN Card",
		"message":  "success",
	}
}
