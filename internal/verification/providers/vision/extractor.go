// Package vision turns Google Cloud Vision text detection into PAN and cheque
// adapters. Vision only returns raw lines; the extraction engine does the rest.
package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	visionapi "google.golang.org/api/vision/v1"

	"integrationhub/internal/verification/providers"
)

const (
	ID = "GOOGLE_VISION"

	defaultTimeout = 30 * time.Second
	textDetection  = "TEXT_DETECTION"
)

// NewService builds a Vision client from a service-account key file.
func NewService(ctx context.Context, credentialsFile string, extra ...option.ClientOption) (*visionapi.Service, error) {
	opts := append([]option.ClientOption{option.WithCredentialsFile(credentialsFile)}, extra...)
	svc, err := visionapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vision client: %w", err)
	}
	return svc, nil
}

// TextExtractor runs TEXT_DETECTION on an image and returns its lines.
type TextExtractor struct {
	svc     *visionapi.Service
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a TextExtractor.
type Option func(*TextExtractor)

// WithTimeout bounds each annotate call.
func WithTimeout(d time.Duration) Option {
	return func(x *TextExtractor) {
		x.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(x *TextExtractor) {
		x.logger = logger
	}
}

// NewTextExtractor wraps an existing Vision client.
func NewTextExtractor(svc *visionapi.Service, opts ...Option) *TextExtractor {
	x := &TextExtractor{
		svc:     svc,
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Lines returns the detected text split on newlines, trimmed, with empty lines
// dropped. An image without text yields no lines and no error.
func (x *TextExtractor) Lines(ctx context.Context, image []byte) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	resp, err := x.svc.Images.Annotate(&visionapi.BatchAnnotateImagesRequest{
		Requests: []*visionapi.AnnotateImageRequest{{
			Image:    &visionapi.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*visionapi.Feature{{Type: textDetection}},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Responses) == 0 {
		return nil, nil
	}
	first := resp.Responses[0]
	if first.Error != nil {
		return nil, &googleapi.Error{Code: http.StatusBadRequest, Message: first.Error.Message}
	}
	if len(first.TextAnnotations) == 0 {
		x.logger.WarnContext(ctx, "no text found in image")
		return nil, nil
	}

	var lines []string
	for _, line := range strings.Split(first.TextAnnotations[0].Description, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	x.logger.DebugContext(ctx, "vision extracted text", "lines", len(lines))
	return lines, nil
}

// classify maps a Vision failure onto the provider taxonomy.
func classify(err error) *providers.ProviderError {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return providers.TransportError(ID, err)
	}
	switch {
	case gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden:
		return providers.NewProviderError(providers.ErrorAuthentication, ID, "vision credentials rejected", err)
	case gerr.Code == http.StatusBadRequest:
		return providers.NewProviderError(providers.ErrorBadData, ID, "vision could not read image", err)
	default:
		return providers.NewProviderError(providers.ErrorProviderOutage, ID, "vision request failed", err)
	}
}
