package vision

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	visionapi "google.golang.org/api/vision/v1"

	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
	"integrationhub/internal/verification/providers/contract"
)

// fakeVision answers images:annotate with the given full text, or with status
// when it is not 200.
func fakeVision(t *testing.T, status int, text string) *TextExtractor {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images:annotate", r.URL.Path)

		var req visionapi.BatchAnnotateImagesRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && assert.Len(t, req.Requests, 1) {
			assert.Equal(t, "TEXT_DETECTION", req.Requests[0].Features[0].Type)
			assert.NotEmpty(t, req.Requests[0].Image.Content)
		}

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"failure"}}`, status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"responses": []any{map[string]any{
				"textAnnotations": []any{map[string]any{"description": text}},
			}},
		})
	}))
	t.Cleanup(srv.Close)

	svc, err := visionapi.NewService(t.Context(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return NewTextExtractor(svc)
}

func image() providers.Input {
	return providers.Input{Image: &models.ImageArtifact{Bytes: []byte("fake image bytes")}}
}

func TestTextExtractorLines(t *testing.T) {
	x := fakeVision(t, http.StatusOK, "  INCOME TAX DEPARTMENT \n\n NAME\nJOHN DOE\n   \n")

	lines, err := x.Lines(t.Context(), []byte("img"))

	require.NoError(t, err)
	assert.Equal(t, []string{"INCOME TAX DEPARTMENT", "NAME", "JOHN DOE"}, lines)
}

func TestPANAdapterContract(t *testing.T) {
	suite := &contract.ContractSuite{
		ProviderID: ID,
		Tests: []contract.ContractTest{
			{
				Name:            "labelled PAN card is extracted",
				Adapter:         NewPANAdapter(fakeVision(t, http.StatusOK, "NAME\nJOHN DOE\nPAN NUMBER\nAAAPL1234C"), nil),
				Input:           image(),
				ExpectedOutcome: models.OutcomeDefinitiveSuccess,
				ValidateFunc: func(t *testing.T, r models.AttemptResult) {
					assert.Equal(t, "AAAPL1234C", r.Fields.DocumentNumber.Value)
					assert.Equal(t, "JOHN DOE", r.Fields.Name.Value)
					assert.Equal(t, models.ProvenanceLabelMatched, r.Fields.Name.Provenance)
				},
			},
			{
				Name:            "payment receipt is a miss even with a PAN",
				Adapter:         NewPANAdapter(fakeVision(t, http.StatusOK, "Paytm UPI receipt\nAAAPL1234C"), nil),
				Input:           image(),
				ExpectedOutcome: models.OutcomeDefinitiveReject,
				ValidateFunc: func(t *testing.T, r models.AttemptResult) {
					assert.True(t, r.PaymentDocument)
					assert.Equal(t, "Payment doc detected", r.Message)
					assert.Equal(t, providers.ErrorExtractionMiss, providers.GetCategory(r.Err))
				},
			},
			{
				Name:            "text without PAN is a miss",
				Adapter:         NewPANAdapter(fakeVision(t, http.StatusOK, "HELLO WORLD"), nil),
				Input:           image(),
				ExpectedOutcome: models.OutcomeDefinitiveReject,
				ValidateFunc: func(t *testing.T, r models.AttemptResult) {
					assert.False(t, r.PaymentDocument)
					assert.Equal(t, "No valid PAN found", r.Message)
				},
			},
		},
	}
	suite.Run(t)
}

func TestPANAdapterErrors(t *testing.T) {
	tests := []contract.ErrorContractTest{
		{
			Name:             "rejected credentials",
			Adapter:          NewPANAdapter(fakeVision(t, http.StatusForbidden, ""), nil),
			Input:            image(),
			ExpectedCategory: providers.ErrorAuthentication,
			ExpectedOutcome:  models.OutcomeInconclusive,
		},
		{
			Name:             "vision outage",
			Adapter:          NewPANAdapter(fakeVision(t, http.StatusServiceUnavailable, ""), nil),
			Input:            image(),
			ExpectedCategory: providers.ErrorProviderOutage,
			ExpectedOutcome:  models.OutcomeInconclusive,
		},
	}
	for _, tc := range tests {
		tc.Run(t)
	}
}

func TestChequeAdapter(t *testing.T) {
	a := NewChequeAdapter(fakeVision(t, http.StatusOK, "STATE BANK\nIFSC SBIN0001234\nA/C 123456789012\n12/05/2026\n₹ 1,250"))

	r := a.Attempt(t.Context(), image())

	require.Equal(t, models.OutcomeDefinitiveSuccess, r.Outcome)
	body, ok := r.RawPayload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, http.StatusOK, body["statusCode"])

	result := body["result"].([]any)[0].(map[string]any)
	details := result["details"].(map[string]any)
	assert.Equal(t, "SBIN0001234", details["ifsc_code"].(map[string]any)["value"])
	assert.Equal(t, "123456789012", details["account_number"].(map[string]any)["value"])
	assert.Equal(t, 0.9, details["date"].(map[string]any)["conf"])
}

func TestUnconfigured(t *testing.T) {
	(&contract.ConfigurationTest{Adapter: NewPANAdapter(nil, nil)}).Run(t)
	(&contract.ConfigurationTest{Adapter: NewChequeAdapter(nil)}).Run(t)
}
