package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"integrationhub/pkg/requestcontext"
)

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "first forwarded address", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, want: "203.0.113.7"},
		{name: "single forwarded address", headers: map[string]string{"X-Forwarded-For": " 203.0.113.8 "}, want: "203.0.113.8"},
		{name: "real ip header", headers: map[string]string{"X-Real-IP": "198.51.100.2"}, want: "198.51.100.2"},
		{name: "remote addr v4", remote: "192.0.2.10:5123", want: "192.0.2.10"},
		{name: "remote addr v6", remote: "[::1]:5123", want: "::1"},
		{name: "nothing", want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(req))
		})
	}
}

func TestClientMetadataStoresValues(t *testing.T) {
	var ip, ua string
	h := ClientMetadata(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ip = requestcontext.ClientIP(r.Context())
		ua = requestcontext.UserAgent(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.9")
	req.Header.Set("User-Agent", "curl/8.4.0")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "198.51.100.9", ip)
	assert.Equal(t, "curl/8.4.0", ua)
}

func TestParseClient(t *testing.T) {
	t.Run("no user agent", func(t *testing.T) {
		assert.Equal(t, Client{}, ParseClient(context.Background()))
	})

	t.Run("desktop browser", func(t *testing.T) {
		ctx := requestcontext.WithClientMetadata(context.Background(), "", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		c := ParseClient(ctx)
		assert.Equal(t, "Chrome", c.Browser)
		assert.Equal(t, "120.0.0.0", c.Version)
		assert.False(t, c.Mobile)
		assert.False(t, c.Bot)
	})

	t.Run("crawler", func(t *testing.T) {
		ctx := requestcontext.WithClientMetadata(context.Background(), "", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
		assert.True(t, ParseClient(ctx).Bot)
	})
}
