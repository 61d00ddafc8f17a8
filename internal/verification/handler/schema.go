package handler

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/invopop/jsonschema"

	dErrors "integrationhub/pkg/domain-errors"
	"integrationhub/pkg/platform/httputil"
)

// SchemaModels names every request body with a published JSON schema.
// Other packages add their own bodies through RegisterSchemas.
var SchemaModels = map[string]any{
	"verify-pan":     &VerifyPANRequest{},
	"verify-gst":     &VerifyGSTRequest{},
	"generate-otp":   &GenerateOTPRequest{},
	"verify-otp":     &VerifyOTPRequest{},
	"offline-verify": &OfflineVerifyRequest{},
	"kyc-link":       &GenerateKYCLinkRequest{},
	"kyc-details":    &KYCDetailsRequest{},
	"cheque-ocr":     &ChequeForm{},
	"pan-ocr":        &PANUploadForm{},
}

// RegisterSchemas mounts GET /api/schema and GET /api/schema/{name}.
func RegisterSchemas(r chi.Router, models map[string]any) {
	reflector := &jsonschema.Reflector{ExpandedStruct: true}
	schemas := make(map[string]*jsonschema.Schema, len(models))
	names := make([]string, 0, len(models))
	for name, model := range models {
		schemas[name] = reflector.Reflect(model)
		names = append(names, name)
	}
	slices.Sort(names)

	r.Get("/api/schema", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{Success: true, Data: names})
	})
	r.Get("/api/schema/{name}", func(w http.ResponseWriter, r *http.Request) {
		s, ok := schemas[chi.URLParam(r, "name")]
		if !ok {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "Schema not found"))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, s)
	})
}
