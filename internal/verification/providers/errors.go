package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorCategory defines the normalized failure taxonomy
type ErrorCategory string

const (
	// ErrorConfigurationMissing indicates required credentials are absent; the adapter is skipped
	ErrorConfigurationMissing ErrorCategory = "configuration_missing"

	// ErrorTimeout indicates the provider took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorProviderOutage indicates a transport failure or an unstructured non-2xx answer
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorProviderRejected indicates a well-formed negative answer from the provider
	ErrorProviderRejected ErrorCategory = "provider_rejected"

	// ErrorBadData indicates the provider returned invalid/malformed data, or the input did not fit the adapter
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates credential or token exchange failures
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorExtractionMiss indicates no usable fields could be recovered from the document
	ErrorExtractionMiss ErrorCategory = "extraction_miss"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError wraps provider failures with normalized categorization
type ProviderError struct {
	Category   ErrorCategory
	ProviderID string
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.ProviderID, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.ProviderID, e.Category, e.Message)
}

// Unwrap supports error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError creates a new normalized provider error
func NewProviderError(category ErrorCategory, providerID, message string, underlying error) *ProviderError {
	return &ProviderError{
		Category:   category,
		ProviderID: providerID,
		Message:    message,
		Underlying: underlying,
	}
}

// GetCategory extracts the error category from an error
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// TransportError classifies a failed round-trip as a timeout or an outage.
func TransportError(providerID string, err error) *ProviderError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewProviderError(ErrorTimeout, providerID, "request timed out", err)
	}
	return NewProviderError(ErrorProviderOutage, providerID, "request failed", err)
}

// Sentinel errors for common cases
var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrMissingInput     = errors.New("adapter input missing")
)
