// Package zoop adapts the Zoop PAN validation and GSTIN lookup APIs. Both
// share the same sync task envelope and header credentials.
package zoop

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"integrationhub/internal/verification/providers"
)

const (
	VerifierID = "ZOOP"
	GSTID      = "ZOOP_GST"

	defaultTimeout = 15 * time.Second
)

// Credentials are the Zoop account headers.
type Credentials struct {
	APIKey string
	AppID  string
}

func (c Credentials) complete() bool {
	return c.APIKey != "" && c.AppID != ""
}

type options struct {
	client *http.Client
	logger *slog.Logger
	taskID func() string
}

// Option configures a Zoop adapter.
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

// WithTaskIDs overrides task_id generation.
func WithTaskIDs(next func() string) Option {
	return func(o *options) {
		o.taskID = next
	}
}

func buildOptions(opts []Option) options {
	o := options{
		client: &http.Client{Timeout: defaultTimeout},
		logger: slog.Default(),
		taskID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// envelope is the sync request body shared by every Zoop product.
type envelope struct {
	Mode   string `json:"mode"`
	Data   any    `json:"data"`
	TaskID string `json:"task_id"`
}

// post sends one task and decodes the structured answer along with its status.
func post(ctx context.Context, o options, providerID, url string, creds Credentials, data any) (map[string]any, int, *providers.ProviderError) {
	body, err := json.Marshal(envelope{Mode: "sync", Data: data, TaskID: o.taskID()})
	if err != nil {
		return nil, 0, providers.NewProviderError(providers.ErrorInternal, providerID, "encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, providers.NewProviderError(providers.ErrorInternal, providerID, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", creds.APIKey)
	req.Header.Set("app-id", creds.AppID)

	resp, perr := providers.Do(o.client, providerID, req)
	if perr != nil {
		return nil, 0, perr
	}
	if perr := providers.StatusFailure(providerID, resp); perr != nil {
		return nil, resp.Status, perr
	}
	var payload map[string]any
	if perr := providers.DecodeStructured(providerID, resp, &payload); perr != nil {
		return nil, resp.Status, perr
	}
	return payload, resp.Status, nil
}
