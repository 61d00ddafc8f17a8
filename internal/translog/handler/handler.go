package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"integrationhub/internal/translog"
	dErrors "integrationhub/pkg/domain-errors"
	"integrationhub/pkg/platform/httputil"
)

// Service is the transaction log surface the handler drives.
type Service interface {
	Log(ctx context.Context, e translog.Entry) (*translog.Entry, error)
	List(ctx context.Context, f translog.Filter) ([]translog.Entry, error)
	Get(ctx context.Context, id int64) (*translog.Entry, error)
}

// CreateEntryRequest is the body of POST /api-transaction-logs. Payload
// fields may be JSON values or strings; values are stored as their JSON text.
type CreateEntryRequest struct {
	AuthType       string          `json:"authType"`
	CallerID       string          `json:"callerId"`
	Service        string          `json:"service" validate:"required"`
	Endpoint       string          `json:"endpoint" validate:"required"`
	RequestPayload json.RawMessage `json:"requestPayload,omitempty"`
	ResponseData   json.RawMessage `json:"responseData,omitempty"`
	Status         string          `json:"status" validate:"required,oneof=success error pending"`
	DurationMs     int64           `json:"durationMs" validate:"gte=0"`
}

// Handler serves the transaction log endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the routes under /api-transaction-logs.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api-transaction-logs", h.handleCreate)
	r.Get("/api-transaction-logs", h.handleList)
	r.Get("/api-transaction-logs/{id}", h.handleGet)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndValidate[CreateEntryRequest](w, r, h.logger)
	if !ok {
		return
	}
	entry, err := h.service.Log(r.Context(), translog.Entry{
		AuthType:       req.AuthType,
		CallerID:       req.CallerID,
		Service:        req.Service,
		Endpoint:       req.Endpoint,
		RequestPayload: payloadText(req.RequestPayload),
		ResponseData:   payloadText(req.ResponseData),
		Status:         translog.Status(req.Status),
		DurationMs:     req.DurationMs,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusCreated, httputil.Envelope{
		Success: true,
		Message: "Transaction logged successfully",
		Data:    entry,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := h.service.List(r.Context(), translog.Filter{
		CallerID: q.Get("callerId"),
		Service:  q.Get("service"),
		Status:   translog.Status(q.Get("status")),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if entries == nil {
		entries = []translog.Entry{}
	}
	httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{
		Success: true,
		Message: "Transactions retrieved successfully",
		Data:    entries,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "Transaction not found"))
		return
	}
	entry, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, httputil.Envelope{
		Success: true,
		Message: "Transaction found",
		Data:    entry,
	})
}

// payloadText unwraps a JSON string and keeps any other value as raw JSON.
func payloadText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
