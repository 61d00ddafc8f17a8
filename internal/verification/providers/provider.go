// Package providers defines the adapter contract every external verification
// vendor implements, the normalized error taxonomy, and helpers for turning
// HTTP exchanges into tagged attempt results.
package providers

import (
	"context"
	"fmt"
	"slices"

	"integrationhub/internal/verification/models"
)

//go:generate mockgen -source=provider.go -destination=mocks/adapter_mocks.go -package=mocks Adapter

// Adapter wraps exactly one external call plus response normalization.
// Attempt never panics and never retries; failures come back as an
// inconclusive result with Err set.
type Adapter interface {
	// ID returns a unique identifier for this provider instance
	ID() string

	// Configured reports whether the credentials the adapter needs are present
	Configured() bool

	// Attempt performs the provider call
	Attempt(ctx context.Context, in Input) models.AttemptResult
}

// Input carries whichever payload the operation needs.
type Input struct {
	Claim  *models.VerificationClaim
	Image  *models.ImageArtifact
	GSTIN  string
	Cheque ChequeOptions
}

// ChequeOptions are the caller-supplied fields forwarded with a cheque image.
type ChequeOptions struct {
	ClientRefID       string
	AccountHolderName string
	CompleteImage     bool
}

// Registry maintains all registered adapters
type Registry struct {
	adapters map[string]Adapter
	order    []string
}

// NewRegistry creates a new empty registry
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

// Register adds an adapter to the registry
func (r *Registry) Register(a Adapter) error {
	id := a.ID()
	if _, exists := r.adapters[id]; exists {
		return fmt.Errorf("provider %s already registered", id)
	}
	r.adapters[id] = a
	r.order = append(r.order, id)
	return nil
}

// Get retrieves an adapter by ID
func (r *Registry) Get(id string) (Adapter, bool) {
	a, ok := r.adapters[id]
	return a, ok
}

// Chain resolves ids into an ordered adapter chain.
func (r *Registry) Chain(ids ...string) ([]Adapter, error) {
	chain := make([]Adapter, 0, len(ids))
	for _, id := range ids {
		a, ok := r.adapters[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, id)
		}
		chain = append(chain, a)
	}
	return chain, nil
}

// IDs returns the registered adapter IDs in registration order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}
