// Package digitap adapts Digitap's cheque OCR and Aadhaar KYC APIs.
// Cheque OCR authenticates with HTTP Basic credentials, the Aadhaar OTP flows
// with a bearer token from the shared token cache, and the DigiLocker KYC-link
// flow with the bare base64 client credential.
package digitap

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	ChequeID  = "DIGITAP"
	AadhaarID = "DIGITAP_AADHAAR"

	// DefaultBaseURL is used by the Aadhaar client when no base URL is configured.
	DefaultBaseURL = "https://api.digitap.ai"

	defaultTimeout = 60 * time.Second
)

// Credentials are the Digitap client id and secret.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

func (c Credentials) complete() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type options struct {
	client *http.Client
	logger *slog.Logger
}

// Option configures a Digitap client.
type Option func(*options)

// WithHTTPClient replaces the default client. The caller owns its timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{
		client: &http.Client{Timeout: defaultTimeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func join(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
