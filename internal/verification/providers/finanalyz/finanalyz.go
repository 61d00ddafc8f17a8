// Package finanalyz adapts the Finanalyz PAN validation and PAN OCR APIs.
package finanalyz

import (
	"log/slog"
	"net/http"
	"time"
)

const (
	VerifierID = "FINANALYZ"
	OCRID      = "FINANALYZ_OCR"

	verifyTimeout = 10 * time.Second
	ocrTimeout    = 60 * time.Second

	apiKeyHeader = "XApiKey"
)

type options struct {
	client *http.Client
	logger *slog.Logger
}

// Option configures a Finanalyz adapter.
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

func buildOptions(timeout time.Duration, opts []Option) options {
	o := options{
		client: &http.Client{Timeout: timeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
