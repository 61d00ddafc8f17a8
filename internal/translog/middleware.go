package translog

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"integrationhub/pkg/platform/middleware/metadata"
	"integrationhub/pkg/platform/middleware/request"
	"integrationhub/pkg/requestcontext"
)

const (
	// HeaderCallerID names the caller on routes without an authenticated identity.
	HeaderCallerID = "X-Caller-ID"

	maxLoggedBody = 64 << 10
)

// Middleware records one entry per request after the handler has written its
// response.
func Middleware(s *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqBody := captureRequestBody(r)

			cw := &capturingWriter{StatusRecorder: request.NewStatusRecorder(w)}
			next.ServeHTTP(cw, r)

			ctx := r.Context()
			service, endpoint := splitPath(r.URL.Path)
			payload, _ := json.Marshal(requestPayload{
				Method: r.Method,
				URL:    r.URL.RequestURI(),
				Body:   reqBody,
				Query:  r.URL.Query(),
				Client: metadata.ParseClient(ctx),
			})

			s.Record(ctx, Entry{
				AuthType:       authType(r),
				CallerID:       callerID(r),
				Service:        service,
				Endpoint:       endpoint,
				RequestPayload: string(payload),
				ResponseData:   cw.body.String(),
				Status:         responseStatus(cw.Status, cw.body.Bytes()),
				DurationMs:     time.Since(start).Milliseconds(),
				CreatedAt:      requestcontext.Now(ctx),
			})
		})
	}
}

type requestPayload struct {
	Method string              `json:"method"`
	URL    string              `json:"url"`
	Body   any                 `json:"body,omitempty"`
	Query  map[string][]string `json:"query,omitempty"`
	Client metadata.Client     `json:"client"`
}

type uploadSummary struct {
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// captureRequestBody returns the decoded JSON body, restoring it for the
// handler. Uploads and other bodies are summarized rather than stored.
func captureRequestBody(r *http.Request) any {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return uploadSummary{ContentType: mediaType, Size: r.ContentLength}
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
	if err != nil {
		return nil
	}
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), r.Body))
	if len(raw) > maxLoggedBody {
		return uploadSummary{ContentType: mediaType, Size: r.ContentLength}
	}
	var body any
	if json.Unmarshal(raw, &body) != nil {
		return string(raw)
	}
	return body
}

// capturingWriter keeps a bounded copy of the response body.
type capturingWriter struct {
	*request.StatusRecorder
	body bytes.Buffer
}

func (c *capturingWriter) Write(b []byte) (int, error) {
	if room := maxLoggedBody - c.body.Len(); room > 0 {
		c.body.Write(b[:min(len(b), room)])
	}
	return c.StatusRecorder.Write(b)
}

// splitPath maps /pan-verification/verify to ("pan-verification", "verify").
func splitPath(path string) (service, endpoint string) {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	service, endpoint = "unknown", "unknown"
	if len(parts) > 0 {
		service = parts[0]
	}
	if len(parts) > 1 {
		endpoint = strings.Join(parts[1:], "/")
	}
	return service, endpoint
}

func callerID(r *http.Request) string {
	if c, ok := requestcontext.CallerOf(r.Context()); ok {
		return c.ID
	}
	if id := r.Header.Get(HeaderCallerID); id != "" {
		return id
	}
	return "unknown"
}

func authType(r *http.Request) string {
	if at := requestcontext.AuthType(r.Context()); at != "" {
		return at
	}
	return DefaultAuthType
}

// responseStatus reads the envelope's success flag, falling back to the HTTP
// status when the body is not an envelope.
func responseStatus(code int, body []byte) Status {
	var env struct {
		Success *bool `json:"success"`
	}
	if json.Unmarshal(body, &env) == nil && env.Success != nil {
		if *env.Success {
			return StatusSuccess
		}
		return StatusError
	}
	if code >= 200 && code < 300 {
		return StatusSuccess
	}
	return StatusError
}
