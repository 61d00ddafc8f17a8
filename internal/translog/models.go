// Package translog records one entry per API call: who called, which service
// and endpoint, the request and response bodies, the outcome and how long it
// took. Entries are written asynchronously so a slow store never delays a
// response.
package translog

import (
	"context"
	"time"
)

// Status is the outcome recorded for a call.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusPending Status = "pending"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusSuccess, StatusError, StatusPending:
		return true
	}
	return false
}

// DefaultAuthType is recorded when the caller did not say how it authenticated.
const DefaultAuthType = "api-key"

// ListLimit caps every listing, newest first.
const ListLimit = 100

// Entry is one logged API transaction.
type Entry struct {
	ID             int64     `json:"id"`
	AuthType       string    `json:"authType"`
	CallerID       string    `json:"callerId"`
	Service        string    `json:"service"`
	Endpoint       string    `json:"endpoint"`
	RequestPayload string    `json:"requestPayload,omitempty"`
	ResponseData   string    `json:"responseData,omitempty"`
	Status         Status    `json:"status"`
	DurationMs     int64     `json:"durationMs"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Filter narrows a listing. Only the first non-empty criterion applies, in
// the order CallerID, Service, Status.
type Filter struct {
	CallerID string
	Service  string
	Status   Status
}

// Store persists entries. Append assigns ID and, when unset, CreatedAt.
type Store interface {
	Append(ctx context.Context, e *Entry) error
	List(ctx context.Context, f Filter) ([]Entry, error)
	Get(ctx context.Context, id int64) (*Entry, error)
}

// Publisher fans entries out to an event stream after they are stored.
type Publisher interface {
	Publish(ctx context.Context, e Entry) error
}
