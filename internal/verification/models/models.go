// Package models holds the value types shared by the verification core:
// claims, image artifacts, per-attempt results and the canonical result the
// orchestrator hands back to callers.
package models

import (
	"regexp"
	"strings"
	"time"

	dErrors "integrationhub/pkg/domain-errors"
)

// ProviderNone is reported as ProviderUsed when every adapter in a chain was
// exhausted without a definitive answer.
const ProviderNone = "NONE"

// DocumentNumberPattern matches a well-formed PAN: five letters, four digits, one letter.
var DocumentNumberPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// OperationKind selects the continuation policy and aggregate failure message.
type OperationKind string

const (
	KindClaimVerification OperationKind = "claim_verification"
	KindImageExtraction   OperationKind = "image_extraction"
	KindChequeExtraction  OperationKind = "cheque_extraction"
	KindGSTLookup         OperationKind = "gst_lookup"
)

// ExhaustedMessage is the aggregate message used when a chain of this kind runs dry.
func (k OperationKind) ExhaustedMessage() string {
	switch k {
	case KindClaimVerification:
		return "Both verification providers failed"
	case KindImageExtraction:
		return "PAN could not be extracted from image"
	case KindChequeExtraction:
		return "Cheque OCR failed"
	case KindGSTLookup:
		return "GST verification failed"
	default:
		return "No provider produced a result"
	}
}

// Outcome is the tagged verdict of a single adapter attempt.
type Outcome int

const (
	OutcomeInconclusive Outcome = iota
	OutcomeDefinitiveSuccess
	OutcomeDefinitiveReject
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDefinitiveSuccess:
		return "definitive_success"
	case OutcomeDefinitiveReject:
		return "definitive_reject"
	default:
		return "inconclusive"
	}
}

// IsDefinitive reports whether the provider gave a final answer.
func (o Outcome) IsDefinitive() bool {
	return o == OutcomeDefinitiveSuccess || o == OutcomeDefinitiveReject
}

// Provenance records how an extracted field was obtained.
type Provenance string

const (
	ProvenanceNone            Provenance = ""
	ProvenanceLabelMatched    Provenance = "label_matched"
	ProvenancePositionalGuess Provenance = "positional_guess"
)

// Field is a single extracted value plus its provenance.
type Field struct {
	Value      string     `json:"value"`
	Provenance Provenance `json:"provenance,omitempty"`
}

// LabelMatched builds a field read from a labelled source such as a
// structured provider answer. An empty value yields the zero Field.
func LabelMatched(value string) Field {
	if value == "" {
		return Field{}
	}
	return Field{Value: value, Provenance: ProvenanceLabelMatched}
}

// IsSet reports whether the field carries a value.
func (f Field) IsSet() bool {
	return f.Value != ""
}

// Offer sets the field when it is unset, or upgrades a positional guess to a
// label match. A label-matched value is never replaced.
func (f *Field) Offer(value string, p Provenance) bool {
	if value == "" {
		return false
	}
	switch {
	case !f.IsSet():
	case f.Provenance == ProvenancePositionalGuess && p == ProvenanceLabelMatched:
	default:
		return false
	}
	f.Value = value
	f.Provenance = p
	return true
}

// ExtractedFields are the normalized identity fields recovered from a document.
type ExtractedFields struct {
	DocumentNumber Field `json:"documentNumber"`
	Name           Field `json:"name"`
	DateOfBirth    Field `json:"dateOfBirth"`
	GuardianName   Field `json:"guardianName"`
}

// IsZero reports whether no field was recovered.
func (e ExtractedFields) IsZero() bool {
	return !e.DocumentNumber.IsSet() && !e.Name.IsSet() && !e.DateOfBirth.IsSet() && !e.GuardianName.IsSet()
}

// VerificationClaim is a structured identity assertion to check against a provider.
// Build it with NewVerificationClaim.
type VerificationClaim struct {
	documentNumber string
	claimedName    string
	dateOfBirth    string
}

// NewVerificationClaim normalizes and validates a claim. The number is trimmed and
// upper-cased; the name must be non-blank.
func NewVerificationClaim(documentNumber, claimedName, dateOfBirth string) (VerificationClaim, error) {
	number := strings.ToUpper(strings.TrimSpace(documentNumber))
	if !DocumentNumberPattern.MatchString(number) {
		return VerificationClaim{}, dErrors.New(dErrors.CodeBadRequest, "Invalid PAN format")
	}
	name := strings.TrimSpace(claimedName)
	if name == "" {
		return VerificationClaim{}, dErrors.New(dErrors.CodeBadRequest, "Name is required for PAN verification")
	}
	return VerificationClaim{
		documentNumber: number,
		claimedName:    name,
		dateOfBirth:    strings.TrimSpace(dateOfBirth),
	}, nil
}

func (c VerificationClaim) DocumentNumber() string { return c.documentNumber }
func (c VerificationClaim) ClaimedName() string    { return c.claimedName }
func (c VerificationClaim) DateOfBirth() string    { return c.dateOfBirth }

// ImageArtifact is an uploaded document image.
type ImageArtifact struct {
	Bytes             []byte
	DeclaredMediaType string
	OriginalFilename  string
	Width             int
	Height            int
}

// Filename returns the original filename or fallback when none was sent.
func (a ImageArtifact) Filename(fallback string) string {
	if a.OriginalFilename != "" {
		return a.OriginalFilename
	}
	return fallback
}

// MediaType returns the declared media type, defaulting to image/jpeg.
func (a ImageArtifact) MediaType() string {
	if a.DeclaredMediaType != "" {
		return a.DeclaredMediaType
	}
	return "image/jpeg"
}

// AttemptResult is what one adapter reports for one call. It is returned by
// value and never mutated after the adapter hands it back.
type AttemptResult struct {
	ProviderID string
	Outcome    Outcome
	// RawPayload is the decoded provider body, kept for audit and for callers
	// that pass the provider response through.
	RawPayload any
	Fields     ExtractedFields
	Details    map[string]any
	Message    string
	// PaymentDocument is set by OCR adapters when the recovered text looks
	// like a payment receipt rather than an identity document.
	PaymentDocument bool
	Err             error
	Duration        time.Duration
}

// AttemptSummary is the provenance entry kept in the canonical result.
type AttemptSummary struct {
	ProviderID string `json:"provider"`
	Outcome    string `json:"outcome"`
	Skipped    bool   `json:"skipped,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

// Summarize reduces an attempt to its provenance entry.
func (r AttemptResult) Summarize() AttemptSummary {
	s := AttemptSummary{
		ProviderID: r.ProviderID,
		Outcome:    r.Outcome.String(),
		DurationMs: r.Duration.Milliseconds(),
	}
	if r.Err != nil {
		s.Error = r.Err.Error()
	}
	return s
}

// CanonicalResult is the single answer produced for a top-level call.
type CanonicalResult struct {
	Verified     bool             `json:"verified"`
	ProviderUsed string           `json:"provider"`
	Fields       ExtractedFields  `json:"fields"`
	Details      map[string]any   `json:"details,omitempty"`
	Message      string           `json:"message,omitempty"`
	RawPayload   any              `json:"-"`
	Attempts     []AttemptSummary `json:"attempts"`
}

// Exhausted reports whether no provider produced a definitive result.
func (r CanonicalResult) Exhausted() bool {
	return r.ProviderUsed == ProviderNone
}

// CachedToken is one provider's bearer token and its expiry. It is stored as
// a single immutable value so readers never observe a half-updated pair.
type CachedToken struct {
	ProviderID string    `json:"provider_id"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ValidAt reports whether the token may be used at now.
func (t *CachedToken) ValidAt(now time.Time) bool {
	return t != nil && t.Token != "" && now.Before(t.ExpiresAt)
}
