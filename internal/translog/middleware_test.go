package translog

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integrationhub/pkg/platform/httputil"
	"integrationhub/pkg/platform/middleware/metadata"
	"integrationhub/pkg/testutil"
)

func nextEntry(t *testing.T, s *Service) Entry {
	t.Helper()
	select {
	case e := <-s.inbox:
		return e
	default:
		t.Fatal("no entry recorded")
		return Entry{}
	}
}

func TestMiddlewareRecordsJSONCall(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	var seenBody string
	handler := Middleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seenBody = string(b)
		httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{Success: true, Data: map[string]string{"ok": "yes"}})
	}))

	req := httptest.NewRequest(http.MethodPost, "/gst/verify?trace=1", strings.NewReader(`{"gstNumber":"29AABCU9603R1ZM"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req = testutil.WithCaller(req, "api-key-user")
	handler.ServeHTTP(httptest.NewRecorder(), metadataRequest(req))

	assert.Equal(t, `{"gstNumber":"29AABCU9603R1ZM"}`, seenBody, "handler still sees the body")

	e := nextEntry(t, svc)
	assert.Equal(t, "gst", e.Service)
	assert.Equal(t, "verify", e.Endpoint)
	assert.Equal(t, "api-key-user", e.CallerID)
	assert.Equal(t, "api-key", e.AuthType)
	assert.Equal(t, StatusSuccess, e.Status)
	assert.Contains(t, e.ResponseData, `"ok":"yes"`)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(e.RequestPayload), &payload))
	assert.Equal(t, "POST", payload["method"])
	assert.Equal(t, "/gst/verify?trace=1", payload["url"])
	assert.Equal(t, map[string]any{"gstNumber": "29AABCU9603R1ZM"}, payload["body"])
	client := payload["client"].(map[string]any)
	assert.Equal(t, "Chrome", client["browser"])
}

func metadataRequest(r *http.Request) *http.Request {
	var out *http.Request
	metadata.ClientMetadata(http.HandlerFunc(func(_ http.ResponseWriter, req *http.Request) {
		out = req
	})).ServeHTTP(httptest.NewRecorder(), r)
	return out
}

func TestMiddlewareUsesCallerHeaderAndEnvelopeStatus(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	handler := Middleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A 200 whose envelope says the call failed is logged as an error.
		httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{Success: false, Message: "Both verification providers failed"})
	}))

	req := httptest.NewRequest(http.MethodPost, "/pan-verification/verify", nil)
	req.Header.Set(HeaderCallerID, "partner-7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	e := nextEntry(t, svc)
	assert.Equal(t, "partner-7", e.CallerID)
	assert.Equal(t, DefaultAuthType, e.AuthType)
	assert.Equal(t, StatusError, e.Status)
}

func TestMiddlewareSummarizesUploads(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	handler := Middleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest(http.MethodPost, "/ocr/v1/pan", strings.NewReader("--boundary\r\n"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=boundary")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	e := nextEntry(t, svc)
	assert.Equal(t, "ocr", e.Service)
	assert.Equal(t, "v1/pan", e.Endpoint)
	assert.Equal(t, StatusError, e.Status)
	assert.Contains(t, e.RequestPayload, `"contentType":"multipart/form-data"`)
	assert.Equal(t, "unknown", e.CallerID)
}

func TestSplitPath(t *testing.T) {
	for path, want := range map[string][2]string{
		"/":                                {"unknown", "unknown"},
		"/health":                          {"health", "unknown"},
		"/aadhaar/details/REQ1":            {"aadhaar", "details/REQ1"},
		"//api-transaction-logs//42":       {"api-transaction-logs", "42"},
	} {
		service, endpoint := splitPath(path)
		assert.Equal(t, want[0], service, path)
		assert.Equal(t, want[1], endpoint, path)
	}
}
