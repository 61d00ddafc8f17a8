package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integrationhub/internal/verification/models"
)

type stubAdapter struct {
	id string
}

func (s stubAdapter) ID() string       { return s.id }
func (s stubAdapter) Configured() bool { return true }
func (s stubAdapter) Attempt(context.Context, Input) models.AttemptResult {
	return models.AttemptResult{ProviderID: s.id, Outcome: models.OutcomeDefinitiveSuccess}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubAdapter{id: "A"}))
	require.NoError(t, r.Register(stubAdapter{id: "B"}))

	t.Run("rejects duplicate ids", func(t *testing.T) {
		assert.Error(t, r.Register(stubAdapter{id: "A"}))
	})

	t.Run("chain keeps requested order", func(t *testing.T) {
		chain, err := r.Chain("B", "A")
		require.NoError(t, err)
		require.Len(t, chain, 2)
		assert.Equal(t, "B", chain[0].ID())
		assert.Equal(t, "A", chain[1].ID())
	})

	t.Run("unknown id fails", func(t *testing.T) {
		_, err := r.Chain("A", "C")
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("ids keep registration order", func(t *testing.T) {
		assert.Equal(t, []string{"A", "B"}, r.IDs())
	})

	t.Run("get", func(t *testing.T) {
		a, ok := r.Get("B")
		require.True(t, ok)
		assert.Equal(t, "B", a.ID())
		_, ok = r.Get("C")
		assert.False(t, ok)
	})
}

func TestSkipped(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		res := Skipped("ZOOP", ErrorConfigurationMissing)
		assert.Equal(t, models.OutcomeInconclusive, res.Outcome)
		assert.Equal(t, "provider not configured", res.Message)
		assert.Equal(t, ErrorConfigurationMissing, GetCategory(res.Err))
	})

	t.Run("open circuit", func(t *testing.T) {
		res := Skipped("FINANALYZ", ErrorProviderOutage)
		assert.Equal(t, "provider circuit open", res.Message)
		assert.Equal(t, ErrorProviderOutage, GetCategory(res.Err))
	})
}

func TestTransportError(t *testing.T) {
	t.Run("deadline exceeded is a timeout", func(t *testing.T) {
		pe := TransportError("X", fmt.Errorf("post: %w", context.DeadlineExceeded))
		assert.Equal(t, ErrorTimeout, pe.Category)
	})

	t.Run("client timeout is a timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client := &http.Client{Timeout: 20 * time.Millisecond}
		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)

		_, pe := Do(client, "X", req)
		require.NotNil(t, pe)
		assert.Equal(t, ErrorTimeout, pe.Category)
	})

	t.Run("other failures are outages", func(t *testing.T) {
		pe := TransportError("X", errors.New("connection refused"))
		assert.Equal(t, ErrorProviderOutage, pe.Category)
		assert.Equal(t, ErrorProviderOutage, GetCategory(fmt.Errorf("wrapped: %w", pe)))
	})

	t.Run("plain errors are internal", func(t *testing.T) {
		assert.Equal(t, ErrorInternal, GetCategory(errors.New("boom")))
	})
}

func TestDecodeStructured(t *testing.T) {
	var v map[string]any

	t.Run("json object decodes", func(t *testing.T) {
		pe := DecodeStructured("X", Response{Status: 400, Body: []byte(` {"message":"bad"}`)}, &v)
		require.Nil(t, pe)
		assert.Equal(t, "bad", v["message"])
	})

	t.Run("html error page on 5xx is an outage", func(t *testing.T) {
		pe := DecodeStructured("X", Response{Status: 502, Body: []byte("<html>bad gateway</html>")}, &v)
		require.NotNil(t, pe)
		assert.Equal(t, ErrorProviderOutage, pe.Category)
	})

	t.Run("garbage on 200 is bad data", func(t *testing.T) {
		pe := DecodeStructured("X", Response{Status: 200, Body: []byte("{not json")}, &v)
		require.NotNil(t, pe)
		assert.Equal(t, ErrorBadData, pe.Category)
	})
}

func TestScalars(t *testing.T) {
	assert.Equal(t, "200", String(float64(200)))
	assert.Equal(t, "100", String("100"))
	assert.Equal(t, "", String(nil))
	assert.InDelta(t, 85.5, Number("85.5"), 0.001)
	assert.InDelta(t, 90, Number(float64(90)), 0.001)
	assert.Zero(t, Number(nil))
}
