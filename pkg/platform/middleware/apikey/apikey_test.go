package apikey

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"integrationhub/pkg/platform/httputil"
	"integrationhub/pkg/requestcontext"
)

func serve(t *testing.T, v *Verifier, key string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var caller string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller = requestcontext.CallerID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	req := httptest.NewRequest(http.MethodGet, "/gst/verify", nil)
	if key != "" {
		req.Header.Set(Header, key)
	}
	rec := httptest.NewRecorder()
	Require(v, logger)(next).ServeHTTP(rec, req)
	return rec, caller
}

func TestMissingKey(t *testing.T) {
	rec, _ := serve(t, NewVerifier(nil, nil), "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var env httputil.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "API Key required. Provide X-API-Key header.", env.Message)
}

func TestOpenVerifierAcceptsAnyKey(t *testing.T) {
	rec, caller := serve(t, NewVerifier(nil, nil), "anything")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, CallerID, caller)
}

func TestPlainKeys(t *testing.T) {
	v := NewVerifier([]string{"alpha", "bravo"}, nil)

	rec, _ := serve(t, v, "bravo")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = serve(t, v, "charlie")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid API Key")
}

func TestHashedKeys(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	v := NewVerifier(nil, []string{string(hash)})

	assert.True(t, v.Verify("s3cret"))
	assert.False(t, v.Verify("s3cret!"))
	assert.False(t, v.Verify(""))
	assert.False(t, v.Open())
}
