// Package httputil holds the JSON response helpers shared by every handler.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "integrationhub/pkg/domain-errors"
)

// Envelope is the response shape every endpoint returns.
type Envelope struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Data     any    `json:"data"`
	Error    any    `json:"error"`
	Provider string `json:"provider,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteEnvelope wraps data in a success envelope.
func WriteEnvelope(w http.ResponseWriter, status int, env Envelope) {
	if env.Message == "" {
		if env.Success {
			env.Message = "Operation successful"
		} else {
			env.Message = "Operation failed"
		}
	}
	WriteJSON(w, status, env)
}

// WriteError maps a domain error to its HTTP status and writes a failure envelope.
// Internal errors never leak their message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := StatusFor(code)

	message := "Internal server error"
	if de, ok := dErrors.As(err); ok && code != dErrors.CodeInternal {
		message = de.Message
	}

	WriteJSON(w, status, Envelope{
		Success: false,
		Message: message,
		Error:   string(code),
	})
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	case dErrors.CodeBadGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// DecodeAndValidate decodes a JSON body into T and runs struct validation.
// On failure it writes the error response and returns false.
func DecodeAndValidate[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	ctx := r.Context()
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logWarn(ctx, logger, "failed to decode request body", err)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid JSON body"))
		return nil, false
	}
	if err := Validate(&req); err != nil {
		logWarn(ctx, logger, "request validation failed", err)
		WriteError(w, err)
		return nil, false
	}
	return &req, true
}

// Validate runs struct-tag validation and converts failures into a validation error.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldMessage(fe))
		}
		return dErrors.New(dErrors.CodeValidation, strings.Join(fields, ", "))
	}
	return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	case "len":
		return fe.Field() + " must be exactly " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

func logWarn(ctx context.Context, logger *slog.Logger, msg string, err error) {
	if logger == nil {
		return
	}
	logger.WarnContext(ctx, msg, "error", err)
}
