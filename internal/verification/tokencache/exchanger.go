package tokencache

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"integrationhub/internal/verification/providers"
)

// ClientCredentialsExchanger posts a client_credentials grant to a JSON token endpoint.
type ClientCredentialsExchanger struct {
	ProviderID   string
	URL          string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
	// Now defaults to time.Now and dates JWT exp fallbacks.
	Now func() time.Time
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
}

type tokenResponse struct {
	AccessToken string  `json:"access_token"`
	ExpiresIn   float64 `json:"expires_in"`
}

func (e *ClientCredentialsExchanger) Exchange(ctx context.Context) (Grant, error) {
	body, err := json.Marshal(tokenRequest{
		ClientID:     e.ClientID,
		ClientSecret: e.ClientSecret,
		GrantType:    "client_credentials",
	})
	if err != nil {
		return Grant{}, fmt.Errorf("encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(body))
	if err != nil {
		return Grant{}, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := e.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, perr := providers.Do(client, e.ProviderID, req)
	if perr != nil {
		return Grant{}, perr
	}
	if !resp.OK() {
		return Grant{}, fmt.Errorf("token endpoint returned status %d", resp.Status)
	}

	var out tokenResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return Grant{}, fmt.Errorf("decode token response: %w", err)
	}
	if out.AccessToken == "" {
		return Grant{}, fmt.Errorf("token response has no access_token")
	}

	expiresIn := time.Duration(out.ExpiresIn * float64(time.Second))
	if expiresIn <= 0 {
		expiresIn = jwtLifetime(out.AccessToken, e.now())
	}
	return Grant{AccessToken: out.AccessToken, ExpiresIn: expiresIn}, nil
}

func (e *ClientCredentialsExchanger) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// jwtLifetime reads the exp claim of an unverified JWT. Opaque tokens yield zero.
func jwtLifetime(token string, now time.Time) time.Duration {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return 0
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	return max(exp.Sub(now), 0)
}

// BasicCredential is base64(clientID:clientSecret), recomputed per call.
// HTTP Basic auth prefixes it with "Basic "; Digitap's KYC endpoints take it bare.
func BasicCredential(clientID, clientSecret string) string {
	return base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))
}
