package digitap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"integrationhub/internal/verification/providers"
	"integrationhub/internal/verification/tokencache"
)

// TokenSource hands out bearer tokens per provider.
type TokenSource interface {
	Token(ctx context.Context, providerID string) (string, error)
}

// Aadhaar drives Digitap's Aadhaar OTP, offline XML and DigiLocker KYC-link
// flows. The OTP and offline flows authenticate with a cached bearer token;
// the KYC-link flow sends the raw client credential.
type Aadhaar struct {
	baseURL     string
	redirectURL string
	creds       Credentials
	tokens      TokenSource
	opts        options
}

// NewAadhaar creates the client. An empty baseURL falls back to DefaultBaseURL.
// A nil token source leaves the OTP flows unconfigured; incomplete credentials
// leave the KYC-link flow unconfigured.
func NewAadhaar(baseURL, redirectURL string, creds Credentials, tokens TokenSource, opts ...Option) *Aadhaar {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Aadhaar{
		baseURL:     baseURL,
		redirectURL: redirectURL,
		creds:       creds,
		tokens:      tokens,
		opts:        buildOptions(opts),
	}
}

// TokenURL is the client-credentials endpoint backing this client's tokens.
func (a *Aadhaar) TokenURL() string {
	return join(a.baseURL, "/auth/token")
}

func (a *Aadhaar) Configured() bool {
	return a.tokens != nil
}

// KYCConfigured reports whether the KYC-link flow has credentials.
func (a *Aadhaar) KYCConfigured() bool {
	return a.creds.complete()
}

// OTPRequest is the answer to an OTP generation.
type OTPRequest struct {
	RequestID string `json:"requestId"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// Identity is the KYC data Digitap returns for a verified Aadhaar.
type Identity struct {
	RequestID           string `json:"requestId,omitempty"`
	Status              string `json:"status,omitempty"`
	Name                any    `json:"name"`
	DOB                 any    `json:"dob"`
	Gender              any    `json:"gender"`
	Address             any    `json:"address"`
	State               any    `json:"state,omitempty"`
	District            any    `json:"district,omitempty"`
	MaskedAadhaarNumber any    `json:"maskedAadhaarNumber,omitempty"`
	Verified            bool   `json:"verified"`
}

// GenerateOTP sends an OTP to the mobile registered against aadhaarNumber.
func (a *Aadhaar) GenerateOTP(ctx context.Context, aadhaarNumber string) (*OTPRequest, error) {
	payload, err := a.call(ctx, http.MethodPost, "/aadhaar/v1/generate-otp", map[string]any{
		"aadhaar_number": aadhaarNumber,
		"redirect_url":   a.redirectURL,
	}, "Failed to generate OTP")
	if err != nil {
		return nil, err
	}

	requestID := providers.String(payload["request_id"])
	if requestID == "" {
		requestID = providers.String(payload["ref_id"])
	}
	return &OTPRequest{
		RequestID: requestID,
		Status:    orDefault(payload["status"], "OTP_SENT"),
		Message:   orDefault(payload["message"], "OTP sent successfully"),
	}, nil
}

// VerifyOTP completes the OTP flow started by GenerateOTP.
func (a *Aadhaar) VerifyOTP(ctx context.Context, requestID, otp string) (*Identity, error) {
	payload, err := a.call(ctx, http.MethodPost, "/aadhaar/v1/verify-otp", map[string]any{
		"request_id": requestID,
		"otp":        otp,
	}, "Failed to verify OTP")
	if err != nil {
		return nil, err
	}
	return &Identity{
		RequestID:           requestID,
		Status:              orDefault(payload["status"], "VERIFIED"),
		Name:                payload["name"],
		DOB:                 payload["dob"],
		Gender:              payload["gender"],
		Address:             payload["address"],
		MaskedAadhaarNumber: payload["masked_aadhaar_number"],
		Verified:            true,
	}, nil
}

// Details fetches the KYC record of a completed OTP request.
func (a *Aadhaar) Details(ctx context.Context, requestID string) (*Identity, error) {
	payload, err := a.call(ctx, http.MethodGet, "/aadhaar/v1/details/"+url.PathEscape(requestID), nil, "Failed to fetch Aadhaar details")
	if err != nil {
		return nil, err
	}
	return &Identity{
		RequestID: requestID,
		Name:      payload["name"],
		DOB:       payload["dob"],
		Gender:    payload["gender"],
		Address:   payload["address"],
		State:     payload["state"],
		District:  payload["district"],
		Verified:  true,
	}, nil
}

// VerifyOffline checks the signed XML from an Aadhaar offline QR code.
func (a *Aadhaar) VerifyOffline(ctx context.Context, xmlData string) (*Identity, error) {
	payload, err := a.call(ctx, http.MethodPost, "/aadhaar/v1/offline-verify", map[string]any{
		"xml_data": xmlData,
	}, "Offline Aadhaar verification failed")
	if err != nil {
		return nil, err
	}
	return &Identity{
		Status:              providers.String(payload["status"]),
		Name:                payload["name"],
		DOB:                 payload["dob"],
		Gender:              payload["gender"],
		Address:             payload["address"],
		MaskedAadhaarNumber: payload["masked_aadhaar"],
		Verified:            true,
	}, nil
}

// KYCLinkRequest identifies the customer a DigiLocker KYC link is sent to.
type KYCLinkRequest struct {
	FirstName      string
	LastName       string
	UID            string
	Mobile         string
	EmailID        string
	RedirectionURL string
}

// KYCLink is Digitap's answer to a link request. Raw is the full vendor body.
type KYCLink struct {
	TransactionID string `json:"transactionId"`
	URL           string `json:"url,omitempty"`
	KYCURL        string `json:"kycUrl,omitempty"`
	Raw           any    `json:"raw"`
}

// KYCDetails is the DigiLocker record of a KYC transaction.
type KYCDetails struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Raw           any    `json:"raw"`
}

// kycServiceID selects Digitap's DigiLocker KYC product.
const kycServiceID = "4"

// GenerateKYCLink asks Digitap to text the customer a DigiLocker KYC link.
func (a *Aadhaar) GenerateKYCLink(ctx context.Context, in KYCLinkRequest) (*KYCLink, error) {
	body := map[string]any{
		"serviceId":               kycServiceID,
		"uid":                     in.UID,
		"firstName":               in.FirstName,
		"lastName":                in.LastName,
		"mobile":                  in.Mobile,
		"isSendOtp":               true,
		"isHideExplanationScreen": false,
		"redirectionUrl":          in.RedirectionURL,
	}
	if in.EmailID != "" {
		body["emailId"] = in.EmailID
	}
	payload, err := a.send(ctx, http.MethodPost, "/ent/v1/kyc/generate-url", a.kycAuthorization(), body, "Failed to generate KYC link", false)
	if err != nil {
		return nil, err
	}
	model := providers.Object(payload, "model")
	return &KYCLink{
		TransactionID: providers.String(model["transactionId"]),
		URL:           providers.String(model["url"]),
		KYCURL:        providers.String(model["kycUrl"]),
		Raw:           payload,
	}, nil
}

// KYCDetails fetches the DigiLocker details once the customer finished KYC.
// Any HTTP status is read as an answer; Success reflects the body.
func (a *Aadhaar) KYCDetails(ctx context.Context, transactionID string) (*KYCDetails, error) {
	payload, err := a.send(ctx, http.MethodPost, "/ent/v1/kyc/get-digilocker-details", a.kycAuthorization(),
		map[string]any{"transactionId": transactionID}, "Failed to fetch KYC details", true)
	if err != nil {
		return nil, err
	}
	a.opts.logger.DebugContext(ctx, "Digitap KYC details fetched", "transaction_id", transactionID)
	return &KYCDetails{
		Success:       kycSucceeded(payload),
		TransactionID: transactionID,
		Raw:           payload,
	}, nil
}

func kycSucceeded(payload map[string]any) bool {
	if providers.String(payload["code"]) == "200" {
		return true
	}
	if ok, _ := payload["success"].(bool); ok {
		return true
	}
	status := providers.String(payload["status"])
	return status == "SUCCESS" || status == "success"
}

func (a *Aadhaar) kycAuthorization() string {
	return tokencache.BasicCredential(a.creds.ClientID, a.creds.ClientSecret)
}

// call performs one bearer-authenticated JSON exchange.
func (a *Aadhaar) call(ctx context.Context, method, path string, body any, fallback string) (map[string]any, error) {
	token, err := a.tokens.Token(ctx, AadhaarID)
	if err != nil {
		a.opts.logger.ErrorContext(ctx, "Digitap authentication failed", "error", err)
		return nil, err
	}
	return a.send(ctx, method, path, "Bearer "+token, body, fallback, false)
}

// send performs one JSON exchange. Unless anyStatus is set, non-2xx answers
// become a ProviderError carrying the provider's message, or fallback when it
// sent none.
func (a *Aadhaar) send(ctx context.Context, method, path, authorization string, body any, fallback string, anyStatus bool) (map[string]any, error) {

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, providers.NewProviderError(providers.ErrorInternal, AadhaarID, "encode request", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, join(a.baseURL, path), reader)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, AadhaarID, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Authorization", authorization)

	resp, perr := providers.Do(a.opts.client, AadhaarID, req)
	if perr != nil {
		a.opts.logger.ErrorContext(ctx, fallback, "error", perr)
		return nil, perr
	}

	var payload map[string]any
	derr := providers.DecodeStructured(AadhaarID, resp, &payload)
	if anyStatus {
		if payload == nil {
			payload = map[string]any{}
		}
		return payload, nil
	}
	if derr != nil && resp.OK() {
		return nil, derr
	}

	if !resp.OK() {
		message := providers.String(payload["message"])
		if message == "" {
			message = fallback
		}
		a.opts.logger.ErrorContext(ctx, message, "status", resp.Status)
		if perr := providers.StatusFailure(AadhaarID, resp); perr != nil {
			perr.Message = message
			return nil, perr
		}
		return nil, providers.NewProviderError(providers.ErrorProviderRejected, AadhaarID, message,
			fmt.Errorf("status %d", resp.Status))
	}
	return payload, nil
}

func orDefault(v any, fallback string) string {
	if s := providers.String(v); s != "" {
		return s
	}
	return fallback
}
