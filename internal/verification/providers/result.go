package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"integrationhub/internal/verification/models"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 4 << 20

// Inconclusive builds an attempt that lets the orchestrator move on.
func Inconclusive(providerID string, err *ProviderError) models.AttemptResult {
	return models.AttemptResult{
		ProviderID: providerID,
		Outcome:    models.OutcomeInconclusive,
		Message:    err.Message,
		Err:        err,
	}
}

// Skipped is the attempt recorded for an adapter passed over without a call,
// either because it is unconfigured or because its circuit is open.
func Skipped(providerID string, reason ErrorCategory) models.AttemptResult {
	message := "provider not configured"
	if reason != ErrorConfigurationMissing {
		message = "provider circuit open"
	}
	return Inconclusive(providerID, NewProviderError(reason, providerID, message, nil))
}

// Reject builds a definitive negative attempt preserving the provider message.
func Reject(providerID, message string, raw any) models.AttemptResult {
	return models.AttemptResult{
		ProviderID: providerID,
		Outcome:    models.OutcomeDefinitiveReject,
		Message:    message,
		RawPayload: raw,
		Err:        NewProviderError(ErrorProviderRejected, providerID, message, nil),
	}
}

// ExtractionMiss builds a negative attempt for documents that yielded no usable fields.
func ExtractionMiss(providerID, message string, raw any) models.AttemptResult {
	return models.AttemptResult{
		ProviderID: providerID,
		Outcome:    models.OutcomeDefinitiveReject,
		Message:    message,
		RawPayload: raw,
		Err:        NewProviderError(ErrorExtractionMiss, providerID, message, nil),
	}
}

// Response is a provider answer read off the wire.
type Response struct {
	Status int
	Body   []byte
}

// OK reports a 2xx status.
func (r Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Do executes req and reads the body. Transport failures come back classified.
func Do(client *http.Client, providerID string, req *http.Request) (Response, *ProviderError) {
	resp, err := client.Do(req)
	if err != nil {
		return Response{}, TransportError(providerID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{Status: resp.StatusCode}, TransportError(providerID, err)
	}
	return Response{Status: resp.StatusCode, Body: body}, nil
}

// DecodeStructured decodes a JSON object body into v. Bodies that are not JSON
// objects are reported as an outage when the status is non-2xx and as bad data
// otherwise, so callers can treat them as inconclusive.
func DecodeStructured(providerID string, resp Response, v any) *ProviderError {
	trimmed := bytes.TrimSpace(resp.Body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return unstructured(providerID, resp, nil)
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return unstructured(providerID, resp, err)
	}
	return nil
}

func unstructured(providerID string, resp Response, err error) *ProviderError {
	if !resp.OK() {
		return NewProviderError(ErrorProviderOutage, providerID, fmt.Sprintf("unexpected status %d", resp.Status), err)
	}
	return NewProviderError(ErrorBadData, providerID, "unreadable provider response", err)
}

// String renders a loosely typed JSON scalar as a string.
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// Number reads a loosely typed JSON scalar as a float; unparseable values are 0.
func Number(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return 0
	}
}

// StatusFailure reports answers whose status alone makes them inconclusive
// regardless of body: rejected credentials and server errors.
func StatusFailure(providerID string, resp Response) *ProviderError {
	switch {
	case resp.Status == http.StatusUnauthorized || resp.Status == http.StatusForbidden:
		return NewProviderError(ErrorAuthentication, providerID, fmt.Sprintf("credentials rejected with status %d", resp.Status), nil)
	case resp.Status >= http.StatusInternalServerError:
		return NewProviderError(ErrorProviderOutage, providerID, fmt.Sprintf("unexpected status %d", resp.Status), nil)
	default:
		return nil
	}
}

// Object walks nested JSON objects by key and returns the one at path, or nil.
func Object(v any, path ...string) map[string]any {
	m, _ := v.(map[string]any)
	for _, key := range path {
		if m == nil {
			return nil
		}
		m, _ = m[key].(map[string]any)
	}
	return m
}
