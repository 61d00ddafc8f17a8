package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"integrationhub/internal/verification/providers/digitap"
	dErrors "integrationhub/pkg/domain-errors"
	"integrationhub/pkg/platform/httputil"
)

func (h *Handler) handleGenerateOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndValidate[GenerateOTPRequest](w, r, h.logger)
	if !ok {
		return
	}
	out, err := h.service.GenerateAadhaarOTP(r.Context(), req.AadhaarNumber)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{Success: true, Message: out.Message, Data: out})
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndValidate[VerifyOTPRequest](w, r, h.logger)
	if !ok {
		return
	}
	out, err := h.service.VerifyAadhaarOTP(r.Context(), req.RequestID, req.OTP)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{Success: true, Message: "Aadhaar verified", Data: out})
}

func (h *Handler) handleAadhaarDetails(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	if requestID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Request ID is required"))
		return
	}
	out, err := h.service.AadhaarDetails(r.Context(), requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{Success: true, Message: "Aadhaar details retrieved", Data: out})
}

func (h *Handler) handleOfflineVerify(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndValidate[OfflineVerifyRequest](w, r, h.logger)
	if !ok {
		return
	}
	out, err := h.service.VerifyOfflineAadhaar(r.Context(), req.XMLData)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{Success: true, Message: "Offline Aadhaar verified", Data: out})
}

func (h *Handler) handleGenerateKYCLink(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndValidate[GenerateKYCLinkRequest](w, r, h.logger)
	if !ok {
		return
	}
	out, err := h.service.GenerateKYCLink(r.Context(), digitap.KYCLinkRequest{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		UID:            req.UID,
		Mobile:         req.Mobile,
		EmailID:        req.EmailID,
		RedirectionURL: req.RedirectionURL,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{Success: true, Message: "KYC link sent to mobile", Data: out})
}

func (h *Handler) handleKYCDetails(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndValidate[KYCDetailsRequest](w, r, h.logger)
	if !ok {
		return
	}
	out, err := h.service.KYCDetails(r.Context(), req.TransactionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	msg := "KYC details retrieved"
	if !out.Success {
		msg = "KYC details not available"
	}
	httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{Success: out.Success, Message: msg, Data: out})
}
