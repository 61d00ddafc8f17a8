// Package apikey gates routes behind the X-API-Key header.
package apikey

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"integrationhub/pkg/platform/httputil"
	"integrationhub/pkg/requestcontext"
)

const (
	// Header carries the caller's key.
	Header = "X-API-Key"
	// CallerID and AuthType are stamped on the context of every accepted request.
	CallerID = "api-key-user"
	AuthType = "api-key"
)

// Verifier checks presented keys against plain keys and bcrypt hashes.
// A verifier with neither accepts any non-empty key.
type Verifier struct {
	keys   [][]byte
	hashes [][]byte
}

func NewVerifier(keys, hashes []string) *Verifier {
	v := &Verifier{}
	for _, k := range keys {
		v.keys = append(v.keys, []byte(k))
	}
	for _, h := range hashes {
		v.hashes = append(v.hashes, []byte(h))
	}
	return v
}

// Open reports whether no keys are configured.
func (v *Verifier) Open() bool {
	return len(v.keys) == 0 && len(v.hashes) == 0
}

// Verify reports whether key is accepted.
func (v *Verifier) Verify(key string) bool {
	if key == "" {
		return false
	}
	if v.Open() {
		return true
	}
	presented := []byte(key)
	match := 0
	// Compare against every plain key so timing does not reveal which one matched.
	for _, k := range v.keys {
		match |= subtle.ConstantTimeCompare(presented, k)
	}
	if match == 1 {
		return true
	}
	for _, h := range v.hashes {
		if bcrypt.CompareHashAndPassword(h, presented) == nil {
			return true
		}
	}
	return false
}

// Require rejects requests without an accepted X-API-Key and records the
// caller identity on the context of those it lets through.
func Require(v *Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := r.Header.Get(Header)
			if key == "" {
				logger.WarnContext(ctx, "authentication failed: no X-API-Key header provided")
				writeUnauthorized(w, "API Key required. Provide X-API-Key header.")
				return
			}
			if !v.Verify(key) {
				logger.WarnContext(ctx, "authentication failed: API key mismatch")
				writeUnauthorized(w, "Invalid API Key")
				return
			}
			ctx = requestcontext.WithCaller(ctx, CallerID, AuthType)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	httputil.WriteEnvelope(w, http.StatusUnauthorized, httputil.Envelope{
		Message: message,
		Error:   "unauthorized",
	})
}
