package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"integrationhub/internal/verification/handler/mocks"
	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
	"integrationhub/internal/verification/providers/digitap"
	dErrors "integrationhub/pkg/domain-errors"
	"integrationhub/pkg/testutil"
)

type VerificationHandlerSuite struct {
	suite.Suite
	router  chi.Router
	service *mocks.MockService
}

func TestVerificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(VerificationHandlerSuite))
}

func (s *VerificationHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	New(s.service, logger, WithMaxUpload(1<<20)).Register(s.router)
	RegisterSchemas(s.router, SchemaModels)
}

func (s *VerificationHandlerSuite) do(req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	var body map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func (s *VerificationHandlerSuite) jsonRequest(path string, v any) *http.Request {
	return testutil.NewJSONRequest(s.T(), http.MethodPost, path, v)
}

func (s *VerificationHandlerSuite) uploadRequest(path, field, mediaType string, data []byte, values map[string]string) *http.Request {
	return testutil.NewMultipartRequest(s.T(), path, field, "card.jpg", mediaType, data, values)
}

func (s *VerificationHandlerSuite) TestVerifyPAN() {
	s.Run("verified claim", func() {
		s.service.EXPECT().VerifyClaim(gomock.Any(), "ABCDE1234F", "JOHN DOE").Return(models.CanonicalResult{
			Verified:     true,
			ProviderUsed: "FINANALYZ",
			Details:      map[string]any{"name_match": true},
		}, nil)

		w, body := s.do(s.jsonRequest("/pan-verification/verify", VerifyPANRequest{PANNumber: "ABCDE1234F", Name: "JOHN DOE"}))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), true, body["success"])
		assert.Equal(s.T(), "FINANALYZ", body["provider"])
		data := body["data"].(map[string]any)
		assert.Equal(s.T(), true, data["verified"])
		assert.Equal(s.T(), map[string]any{"name_match": true}, data["details"])
	})

	s.Run("exhausted chain answers success false", func() {
		s.service.EXPECT().VerifyClaim(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.CanonicalResult{
			ProviderUsed: models.ProviderNone,
			Attempts: []models.AttemptSummary{
				{ProviderID: "FINANALYZ", Outcome: "inconclusive", Error: "timeout"},
				{ProviderID: "ZOOP", Outcome: "inconclusive", Error: "503"},
			},
		}, nil)

		w, body := s.do(s.jsonRequest("/pan-verification/verify", VerifyPANRequest{PANNumber: "ABCDE1234F", Name: "JOHN DOE"}))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), false, body["success"])
		assert.Equal(s.T(), exhaustedClaimMessage, body["message"])
		data := body["data"].(map[string]any)
		assert.Equal(s.T(), "NONE", data["provider"])
		assert.Len(s.T(), data["attempts"], 2)
	})

	s.Run("missing name", func() {
		s.service.EXPECT().VerifyClaim(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w, body := s.do(s.jsonRequest("/pan-verification/verify", VerifyPANRequest{PANNumber: "ABCDE1234F"}))

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "Name is required", body["message"])
		assert.Equal(s.T(), "validation_error", body["error"])
	})

	s.Run("whitespace name reaches the service", func() {
		s.service.EXPECT().VerifyClaim(gomock.Any(), "ABCDE1234F", "   ").
			Return(models.CanonicalResult{}, dErrors.New(dErrors.CodeBadRequest, "Name is required for PAN verification"))

		w, body := s.do(s.jsonRequest("/pan-verification/verify", VerifyPANRequest{PANNumber: "ABCDE1234F", Name: "   "}))

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "Name is required for PAN verification", body["message"])
	})

	s.Run("service rejects the claim", func() {
		s.service.EXPECT().VerifyClaim(gomock.Any(), "bad", "JOHN").
			Return(models.CanonicalResult{}, dErrors.New(dErrors.CodeBadRequest, "Invalid PAN format"))

		w, body := s.do(s.jsonRequest("/pan-verification/verify", VerifyPANRequest{PANNumber: "bad", Name: "JOHN"}))

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "Invalid PAN format", body["message"])
	})

	s.Run("malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/pan-verification/verify", strings.NewReader("{"))
		w, body := s.do(req)

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "Invalid JSON body", body["message"])
	})
}

func (s *VerificationHandlerSuite) TestValidatePANRequiresBothFields() {
	s.service.EXPECT().VerifyClaim(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w, body := s.do(s.jsonRequest("/pan-verification/validate", VerifyPANRequest{Name: "JOHN DOE"}))
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "PANNumber is required", body["message"])

	w, body = s.do(s.jsonRequest("/pan-verification/validate", map[string]string{}))
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "PANNumber is required, Name is required", body["message"])
}

func (s *VerificationHandlerSuite) TestPANOCR() {
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	s.Run("structured provider answer passes through", func() {
		raw := map[string]any{"pan": "ABCDE1234F"}
		s.service.EXPECT().ExtractFromImage(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a models.ImageArtifact) (models.CanonicalResult, error) {
				assert.Equal(s.T(), image, a.Bytes)
				assert.Equal(s.T(), "image/jpeg", a.DeclaredMediaType)
				assert.Equal(s.T(), "card.jpg", a.OriginalFilename)
				return models.CanonicalResult{ProviderUsed: "FINANALYZ_OCR", RawPayload: raw}, nil
			})

		w, body := s.do(s.uploadRequest("/pan-verification/ocr", "file", "image/jpeg", image, nil))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), "PAN extracted successfully", body["message"])
		data := body["data"].(map[string]any)
		assert.Equal(s.T(), "FINANALYZ_OCR", data["provider"])
		assert.Equal(s.T(), raw, data["response"])
	})

	s.Run("text extraction is rendered in the document shape", func() {
		s.service.EXPECT().ExtractFromImage(gomock.Any(), gomock.Any()).Return(models.CanonicalResult{
			ProviderUsed: "GOOGLE_VISION",
			Fields: models.ExtractedFields{
				DocumentNumber: models.LabelMatched("ABCDE1234F"),
				Name:           models.LabelMatched("JOHN DOE"),
			},
		}, nil)

		_, body := s.do(s.uploadRequest("/ocr/v1/pan", "imageUrl", "image/png", image, nil))

		response := body["data"].(map[string]any)["response"].(map[string]any)
		assert.Equal(s.T(), "PAN Card", response["doc_Name"])
		fields := response["data"].(map[string]any)
		assert.Equal(s.T(), "ABCDE1234F", fields["pan_number"])
		assert.Equal(s.T(), "JOHN DOE", fields["name"])
	})

	s.Run("exhausted chain", func() {
		s.service.EXPECT().ExtractFromImage(gomock.Any(), gomock.Any()).
			Return(models.CanonicalResult{ProviderUsed: models.ProviderNone, Message: "no provider answered"}, nil)

		w, body := s.do(s.uploadRequest("/pan-verification/ocr", "file", "image/jpeg", image, nil))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), false, body["success"])
		assert.Equal(s.T(), "Failed to extract PAN", body["message"])
		assert.Equal(s.T(), "no provider answered", body["data"].(map[string]any)["error"])
	})

	s.Run("disallowed media type", func() {
		w, body := s.do(s.uploadRequest("/pan-verification/ocr", "file", "application/pdf", image, nil))

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Contains(s.T(), body["message"], "Invalid file type")
		assert.Contains(s.T(), body["message"], "Received: application/pdf")
	})

	s.Run("wrong field name", func() {
		w, body := s.do(s.uploadRequest("/ocr/v1/pan", "file", "image/jpeg", image, nil))

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "Image file is required", body["message"])
	})

	s.Run("oversized upload", func() {
		w, body := s.do(s.uploadRequest("/pan-verification/ocr", "file", "image/jpeg", make([]byte, 2<<20), nil))

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "Image file is too large", body["message"])
	})
}

func (s *VerificationHandlerSuite) TestChequeOCR() {
	image := []byte{0x89, 'P', 'N', 'G'}
	form := map[string]string{"clientRefId": "CLT21", "accountHolderName": "JOHN DOE", "isCompleteImage": "yes"}

	s.Run("success", func() {
		s.service.EXPECT().ExtractCheque(gomock.Any(), gomock.Any(), providers.ChequeOptions{
			ClientRefID:       "CLT21",
			AccountHolderName: "JOHN DOE",
			CompleteImage:     true,
		}).Return(map[string]any{"status": "success", "ifsc": "HDFC0000001"}, nil)

		w, body := s.do(s.uploadRequest("/ocr/v1/cheque", "imageUrl", "image/png", image, form))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), true, body["success"])
		assert.Equal(s.T(), "HDFC0000001", body["data"].(map[string]any)["ifsc"])
	})

	s.Run("provider failure answer", func() {
		s.service.EXPECT().ExtractCheque(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(map[string]any{"status": "failure", "error": "Image is blurred"}, nil)

		w, body := s.do(s.uploadRequest("/ocr/v1/cheque", "imageUrl", "image/png", image, form))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), false, body["success"])
		assert.Equal(s.T(), "Image is blurred", body["message"])
	})

	s.Run("invalid completeness flag", func() {
		w, body := s.do(s.uploadRequest("/ocr/v1/cheque", "imageUrl", "image/png", image,
			map[string]string{"clientRefId": "CLT21", "isCompleteImage": "maybe"}))

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "IsCompleteImage must be one of yes no", body["message"])
	})
}

func (s *VerificationHandlerSuite) TestVerifyGST() {
	s.Run("passes the provider answer through", func() {
		s.service.EXPECT().LookupGST(gomock.Any(), "29AABCU9603R1ZM").
			Return(map[string]any{"legal_name": "ACME"}, nil)

		w, body := s.do(s.jsonRequest("/gst/verify", VerifyGSTRequest{GSTNumber: "29AABCU9603R1ZM"}))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), "GST verification successful", body["message"])
		assert.Equal(s.T(), "ACME", body["data"].(map[string]any)["legal_name"])
	})

	s.Run("missing number", func() {
		w, body := s.do(s.jsonRequest("/gst/verify", map[string]string{}))

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "GSTNumber is required", body["message"])
	})

	s.Run("upstream failure", func() {
		s.service.EXPECT().LookupGST(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.Wrap(errors.New("dial tcp"), dErrors.CodeBadGateway, "GST provider unavailable"))

		w, body := s.do(s.jsonRequest("/gst/verify", VerifyGSTRequest{GSTNumber: "29AABCU9603R1ZM"}))

		assert.Equal(s.T(), http.StatusBadGateway, w.Code)
		assert.Equal(s.T(), "GST provider unavailable", body["message"])
	})
}

func (s *VerificationHandlerSuite) TestAadhaar() {
	s.Run("generate otp", func() {
		s.service.EXPECT().GenerateAadhaarOTP(gomock.Any(), "123412341234").
			Return(&digitap.OTPRequest{RequestID: "req-1", Status: "success", Message: "OTP sent"}, nil)

		w, body := s.do(s.jsonRequest("/aadhaar/generate-otp", GenerateOTPRequest{AadhaarNumber: "123412341234"}))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), "OTP sent", body["message"])
		assert.Equal(s.T(), "req-1", body["data"].(map[string]any)["requestId"])
	})

	s.Run("verify otp", func() {
		s.service.EXPECT().VerifyAadhaarOTP(gomock.Any(), "req-1", "123456").
			Return(&digitap.Identity{RequestID: "req-1", Name: "JOHN DOE", Verified: true}, nil)

		w, body := s.do(s.jsonRequest("/aadhaar/verify-otp", VerifyOTPRequest{RequestID: "req-1", OTP: "123456"}))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		data := body["data"].(map[string]any)
		assert.Equal(s.T(), true, data["verified"])
		assert.Equal(s.T(), "JOHN DOE", data["name"])
	})

	s.Run("verify otp requires both fields", func() {
		w, body := s.do(s.jsonRequest("/aadhaar/verify-otp", VerifyOTPRequest{RequestID: "req-1"}))

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "OTP is required", body["message"])
	})

	s.Run("details", func() {
		s.service.EXPECT().AadhaarDetails(gomock.Any(), "req-9").
			Return(&digitap.Identity{RequestID: "req-9"}, nil)

		w, _ := s.do(httptest.NewRequest(http.MethodGet, "/aadhaar/details/req-9", nil))

		assert.Equal(s.T(), http.StatusOK, w.Code)
	})

	s.Run("details not found", func() {
		s.service.EXPECT().AadhaarDetails(gomock.Any(), "missing").
			Return(nil, dErrors.New(dErrors.CodeNotFound, "Aadhaar request not found"))

		w := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/aadhaar/details/missing"))

		testutil.AssertFailure(s.T(), w, http.StatusNotFound, "not_found")
	})

	s.Run("offline verify", func() {
		s.service.EXPECT().VerifyOfflineAadhaar(gomock.Any(), "<OfflinePaperlessKyc/>").
			Return(&digitap.Identity{Verified: true}, nil)

		w, body := s.do(s.jsonRequest("/aadhaar/offline-verify", OfflineVerifyRequest{XMLData: "<OfflinePaperlessKyc/>"}))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), "Offline Aadhaar verified", body["message"])
	})
}

func (s *VerificationHandlerSuite) TestKYCLink() {
	link := GenerateKYCLinkRequest{
		FirstName:      "John",
		LastName:       "Doe",
		UID:            "123412341234",
		Mobile:         "9876543210",
		RedirectionURL: "https://app.example.com/kyc/done",
	}

	s.Run("generate link", func() {
		s.service.EXPECT().GenerateKYCLink(gomock.Any(), digitap.KYCLinkRequest{
			FirstName:      "John",
			LastName:       "Doe",
			UID:            "123412341234",
			Mobile:         "9876543210",
			RedirectionURL: "https://app.example.com/kyc/done",
		}).Return(&digitap.KYCLink{TransactionID: "TXN-7", URL: "https://kyc.example/u/TXN-7"}, nil)

		w, body := s.do(s.jsonRequest("/aadhaar/generate-kyc-link", link))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), "KYC link sent to mobile", body["message"])
		assert.Equal(s.T(), "TXN-7", body["data"].(map[string]any)["transactionId"])
	})

	s.Run("generate link requires names", func() {
		s.service.EXPECT().GenerateKYCLink(gomock.Any(), gomock.Any()).Times(0)
		bad := link
		bad.FirstName = ""

		w, body := s.do(s.jsonRequest("/aadhaar/generate-kyc-link", bad))

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "FirstName is required", body["message"])
	})

	s.Run("generate link rejects a bad email", func() {
		bad := link
		bad.EmailID = "not-an-email"

		w, body := s.do(s.jsonRequest("/aadhaar/generate-kyc-link", bad))

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "EmailID is invalid", body["message"])
	})

	s.Run("credentials missing", func() {
		s.service.EXPECT().GenerateKYCLink(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "Digitap KYC credentials not configured"))

		w := testutil.DoRequest(s.router, s.jsonRequest("/aadhaar/generate-kyc-link", link))

		testutil.AssertFailure(s.T(), w, http.StatusServiceUnavailable, "unavailable")
	})

	s.Run("details retrieved", func() {
		s.service.EXPECT().KYCDetails(gomock.Any(), "TXN-7").
			Return(&digitap.KYCDetails{Success: true, TransactionID: "TXN-7"}, nil)

		w, body := s.do(s.jsonRequest("/aadhaar/kyc-details", KYCDetailsRequest{TransactionID: "TXN-7"}))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), true, body["success"])
		assert.Equal(s.T(), "KYC details retrieved", body["message"])
	})

	s.Run("details pending", func() {
		s.service.EXPECT().KYCDetails(gomock.Any(), "TXN-8").
			Return(&digitap.KYCDetails{TransactionID: "TXN-8", Raw: map[string]any{"code": "404"}}, nil)

		w, body := s.do(s.jsonRequest("/aadhaar/kyc-details", KYCDetailsRequest{TransactionID: "TXN-8"}))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), false, body["success"])
		assert.Equal(s.T(), "KYC details not available", body["message"])
	})

	s.Run("details require a transaction id", func() {
		w, body := s.do(s.jsonRequest("/aadhaar/kyc-details", KYCDetailsRequest{}))

		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		assert.Equal(s.T(), "TransactionID is required", body["message"])
	})
}

func (s *VerificationHandlerSuite) TestSchemas() {
	s.Run("lists names", func() {
		w, body := s.do(httptest.NewRequest(http.MethodGet, "/api/schema", nil))

		assert.Equal(s.T(), http.StatusOK, w.Code)
		names := body["data"].([]any)
		assert.Contains(s.T(), names, "verify-pan")
		assert.Contains(s.T(), names, "cheque-ocr")
	})

	s.Run("serves one schema", func() {
		rec := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/api/schema/verify-gst"))

		testutil.AssertStatusOK(s.T(), rec)
		testutil.AssertHasKey(s.T(), rec, "properties")
	})

	s.Run("unknown schema", func() {
		w, body := s.do(httptest.NewRequest(http.MethodGet, "/api/schema/nope", nil))

		assert.Equal(s.T(), http.StatusNotFound, w.Code)
		assert.Equal(s.T(), "Schema not found", body["message"])
	})
}
