package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"integrationhub/internal/verification/metrics"
	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
	"integrationhub/internal/verification/providers/mocks"
	"integrationhub/pkg/platform/circuit"
)

type OrchestratorSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	metrics *metrics.Metrics
	orch    *Orchestrator
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.orch = New(WithMetrics(s.metrics))
}

func (s *OrchestratorSuite) adapter(id string, configured bool) *mocks.MockAdapter {
	a := mocks.NewMockAdapter(s.ctrl)
	a.EXPECT().ID().Return(id).AnyTimes()
	a.EXPECT().Configured().Return(configured).AnyTimes()
	return a
}

func claimInput(s *OrchestratorSuite) providers.Input {
	c, err := models.NewVerificationClaim("AAAPL1234C", "John Doe", "")
	s.Require().NoError(err)
	return providers.Input{Claim: &c}
}

func success(id string) models.AttemptResult {
	return models.AttemptResult{
		ProviderID: id,
		Outcome:    models.OutcomeDefinitiveSuccess,
		Fields: models.ExtractedFields{
			DocumentNumber: models.LabelMatched("AAAPL1234C"),
			Name:           models.LabelMatched("JOHN DOE"),
		},
		Details: map[string]any{"nameMatchScore": 100},
	}
}

func outage(id string) models.AttemptResult {
	return providers.Inconclusive(id, providers.NewProviderError(providers.ErrorProviderOutage, id, "request failed", nil))
}

func (s *OrchestratorSuite) TestClaimVerification() {
	s.Run("definitive success short-circuits the chain", func() {
		a := s.adapter("A", true)
		b := s.adapter("B", true)
		a.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(success("A"))
		b.EXPECT().Attempt(gomock.Any(), gomock.Any()).Times(0)

		res := s.orch.Run(s.T().Context(), models.KindClaimVerification, []providers.Adapter{a, b}, ContinueOnInconclusive, claimInput(s))

		s.True(res.Verified)
		s.Equal("A", res.ProviderUsed)
		s.Len(res.Attempts, 1)
	})

	s.Run("definitive reject is final", func() {
		a := s.adapter("A", true)
		b := s.adapter("B", true)
		a.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(providers.Reject("A", "PAN does not exist", nil))
		b.EXPECT().Attempt(gomock.Any(), gomock.Any()).Times(0)

		res := s.orch.Run(s.T().Context(), models.KindClaimVerification, []providers.Adapter{a, b}, ContinueOnInconclusive, claimInput(s))

		s.False(res.Verified)
		s.Equal("A", res.ProviderUsed)
		s.Equal("PAN does not exist", res.Message)
	})

	s.Run("transport failure falls through to the next provider", func() {
		a := s.adapter("A", true)
		b := s.adapter("B", true)
		a.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(outage("A"))
		b.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(success("B"))

		res := s.orch.Run(s.T().Context(), models.KindClaimVerification, []providers.Adapter{a, b}, ContinueOnInconclusive, claimInput(s))

		s.True(res.Verified)
		s.Equal("B", res.ProviderUsed)
		s.Require().Len(res.Attempts, 2)
		s.Equal("inconclusive", res.Attempts[0].Outcome)
		s.NotEmpty(res.Attempts[0].Error)
	})

	s.Run("all inconclusive exhausts the chain", func() {
		a := s.adapter("A", true)
		b := s.adapter("B", true)
		a.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(outage("A"))
		b.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(outage("B"))

		res := s.orch.Run(s.T().Context(), models.KindClaimVerification, []providers.Adapter{a, b}, ContinueOnInconclusive, claimInput(s))

		s.False(res.Verified)
		s.Equal(models.ProviderNone, res.ProviderUsed)
		s.Equal("Both verification providers failed", res.Message)
		s.True(res.Exhausted())
	})

	s.Run("unconfigured adapter is skipped without a call", func() {
		a := s.adapter("A", false)
		b := s.adapter("B", true)
		a.EXPECT().Attempt(gomock.Any(), gomock.Any()).Times(0)
		b.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(success("B"))

		res := s.orch.Run(s.T().Context(), models.KindClaimVerification, []providers.Adapter{a, b}, ContinueOnInconclusive, claimInput(s))

		s.Equal("B", res.ProviderUsed)
		s.Require().Len(res.Attempts, 2)
		s.True(res.Attempts[0].Skipped)
		s.Contains(res.Attempts[0].Error, string(providers.ErrorConfigurationMissing))
		s.Contains(res.Attempts[0].Error, "provider not configured")
	})
}

func (s *OrchestratorSuite) TestImageExtraction() {
	image := providers.Input{Image: &models.ImageArtifact{Bytes: []byte("img")}}

	s.Run("payment receipt moves on to the next provider", func() {
		a := s.adapter("OCR", true)
		b := s.adapter("VISION", true)
		receipt := success("OCR")
		receipt.PaymentDocument = true
		a.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(receipt)
		b.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(success("VISION"))

		res := s.orch.Run(s.T().Context(), models.KindImageExtraction, []providers.Adapter{a, b}, ContinueOnExtractionMiss, image)

		s.Equal("VISION", res.ProviderUsed)
		s.Equal("AAAPL1234C", res.Fields.DocumentNumber.Value)
	})

	s.Run("extraction miss moves on and exhausts", func() {
		a := s.adapter("OCR", true)
		b := s.adapter("VISION", true)
		a.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(providers.ExtractionMiss("OCR", "No valid PAN found", nil))
		b.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(providers.ExtractionMiss("VISION", "No valid PAN found", nil))

		res := s.orch.Run(s.T().Context(), models.KindImageExtraction, []providers.Adapter{a, b}, ContinueOnExtractionMiss, image)

		s.Equal(models.ProviderNone, res.ProviderUsed)
		s.Equal("PAN could not be extracted from image", res.Message)
		s.True(res.Fields.IsZero())
	})

	s.Run("success without document number is a miss", func() {
		a := s.adapter("OCR", true)
		a.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(models.AttemptResult{ProviderID: "OCR", Outcome: models.OutcomeDefinitiveSuccess})

		res := s.orch.Run(s.T().Context(), models.KindImageExtraction, []providers.Adapter{a}, ContinueOnExtractionMiss, image)

		s.True(res.Exhausted())
	})
}

func (s *OrchestratorSuite) TestEmptyChain() {
	res := s.orch.Run(s.T().Context(), models.KindChequeExtraction, nil, ContinueOnInconclusive, providers.Input{})

	s.Equal(models.ProviderNone, res.ProviderUsed)
	s.Equal("Cheque OCR failed", res.Message)
	s.Empty(res.Attempts)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ChainExhausted.WithLabelValues(string(models.KindChequeExtraction))))
}

func (s *OrchestratorSuite) TestAdapterPanicIsInconclusive() {
	a := s.adapter("A", true)
	b := s.adapter("B", true)
	a.EXPECT().Attempt(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, providers.Input) models.AttemptResult {
		panic("nil map")
	})
	b.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(success("B"))

	res := s.orch.Run(s.T().Context(), models.KindClaimVerification, []providers.Adapter{a, b}, ContinueOnInconclusive, claimInput(s))

	s.Equal("B", res.ProviderUsed)
	s.Contains(res.Attempts[0].Error, "adapter panicked")
}

func (s *OrchestratorSuite) TestMetricsRecorded() {
	a := s.adapter("A", true)
	a.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(success("A"))

	s.orch.Run(s.T().Context(), models.KindClaimVerification, []providers.Adapter{a}, ContinueOnInconclusive, claimInput(s))

	s.Equal(1.0, testutil.ToFloat64(s.metrics.AttemptOutcome.WithLabelValues("A", "definitive_success")))
}

func TestBreakerSkipsOpenProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	orch := New(WithBreakers(
		circuit.WithFailureThreshold(2),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(clock),
	))

	a := mocks.NewMockAdapter(ctrl)
	a.EXPECT().ID().Return("A").AnyTimes()
	a.EXPECT().Configured().Return(true).AnyTimes()
	a.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(outage("A")).Times(2)

	b := mocks.NewMockAdapter(ctrl)
	b.EXPECT().ID().Return("B").AnyTimes()
	b.EXPECT().Configured().Return(true).AnyTimes()
	b.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(success("B")).Times(3)

	chain := []providers.Adapter{a, b}
	for range 2 {
		res := orch.Run(t.Context(), models.KindClaimVerification, chain, ContinueOnInconclusive, providers.Input{})
		require.Equal(t, "B", res.ProviderUsed)
	}
	assert.Equal(t, "open", orch.BreakerStates()["A"])

	// A is not called a third time while its circuit is open.
	res := orch.Run(t.Context(), models.KindClaimVerification, chain, ContinueOnInconclusive, providers.Input{})
	require.Equal(t, "B", res.ProviderUsed)
	assert.True(t, res.Attempts[0].Skipped)
	assert.Contains(t, res.Attempts[0].Error, "provider circuit open")
}

func TestContinuations(t *testing.T) {
	assert.True(t, ContinueOnInconclusive(models.AttemptResult{Outcome: models.OutcomeInconclusive}))
	assert.False(t, ContinueOnInconclusive(models.AttemptResult{Outcome: models.OutcomeDefinitiveReject}))

	assert.False(t, ContinueOnExtractionMiss(success("A")))
	assert.True(t, ContinueOnExtractionMiss(models.AttemptResult{Outcome: models.OutcomeDefinitiveReject}))
}
