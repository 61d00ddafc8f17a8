package testutil

import (
	"net/http"

	"integrationhub/pkg/requestcontext"
)

// WithCaller adds an authenticated caller to the request context.
// This simulates what the API-key middleware does.
func WithCaller(req *http.Request, callerID string) *http.Request {
	ctx := requestcontext.WithCaller(req.Context(), callerID, "api-key")
	return req.WithContext(ctx)
}
