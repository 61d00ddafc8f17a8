package handler

import (
	"net/http"

	"integrationhub/internal/verification/providers"
	"integrationhub/pkg/platform/httputil"
)

func (h *Handler) handleChequeOCR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	artifact, form, err := h.readUpload(w, r, "imageUrl")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	fields := ChequeForm{
		ClientRefID:       formValue(form, "clientRefId"),
		AccountHolderName: formValue(form, "accountHolderName"),
		IsCompleteImage:   formValue(form, "isCompleteImage"),
	}
	if err := httputil.Validate(&fields); err != nil {
		httputil.WriteError(w, err)
		return
	}

	payload, err := h.service.ExtractCheque(ctx, artifact, providers.ChequeOptions{
		ClientRefID:       fields.ClientRefID,
		AccountHolderName: fields.AccountHolderName,
		CompleteImage:     fields.IsCompleteImage == "yes",
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	env := httputil.Envelope{Success: true, Message: "Cheque processed successfully", Data: payload}
	// A provider failure answer is passed through as data with success=false.
	if body, ok := payload.(map[string]any); ok && body["status"] == "failure" {
		env.Success = false
		env.Message = "Cheque OCR failed"
		if msg, ok := body["error"].(string); ok && msg != "" {
			env.Message = msg
		}
	}
	httputil.WriteEnvelope(w, http.StatusOK, env)
}

func (h *Handler) handleVerifyGST(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndValidate[VerifyGSTRequest](w, r, h.logger)
	if !ok {
		return
	}
	payload, err := h.service.LookupGST(r.Context(), req.GSTNumber)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{
		Success: true,
		Message: "GST verification successful",
		Data:    payload,
	})
}
