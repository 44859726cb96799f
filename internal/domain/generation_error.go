package domain

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// FailureKind classifies why a generation attempt did not produce usable output.
// Every kind leads to the same deterministic fallback; the kind is kept for logs and metrics.
type FailureKind string

// Failure kinds.
const (
	FailureNetwork       FailureKind = "network"
	FailureTimeout       FailureKind = "timeout"
	FailureAuth          FailureKind = "auth"
	FailureRateLimited   FailureKind = "rate_limited"
	FailureServer        FailureKind = "server"
	FailureStatus        FailureKind = "status"
	FailureMalformed     FailureKind = "malformed_envelope"
	FailureSafety        FailureKind = "safety_block"
	FailureRecitation    FailureKind = "recitation_block"
	FailureNoContent     FailureKind = "no_content"
	FailureParse         FailureKind = "parse"
	FailureNotConfigured FailureKind = "not_configured"
	FailureBudget        FailureKind = "budget_exceeded"
	FailureUnknown       FailureKind = "unknown"
)

// GenerationError is a classified provider failure.
type GenerationError struct {
	Kind       FailureKind
	StatusCode int
	Message    string
	cause      error
}

func (e *GenerationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error { return e.cause }

// NewGenerationError creates a classified failure wrapping cause (may be nil).
func NewGenerationError(kind FailureKind, message string, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Message: message, cause: cause}
}

// NewStatusError classifies a non-2xx provider response. Well-known statuses get
// a fixed message; otherwise the provider message is kept.
func NewStatusError(status int, providerMessage string, cause error) *GenerationError {
	kind := FailureStatus
	msg := providerMessage
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = FailureAuth
		msg = "API key invalid or quota exceeded"
	case status == http.StatusTooManyRequests:
		kind = FailureRateLimited
		msg = "Rate limit exceeded"
	case status >= http.StatusInternalServerError:
		kind = FailureServer
		msg = "service temporarily unavailable"
	}
	if msg == "" {
		msg = "Unknown error"
	}
	return &GenerationError{Kind: kind, StatusCode: status, Message: msg, cause: cause}
}

// FailureKindOf extracts the failure kind from any error returned by the generation chain.
func FailureKindOf(err error) FailureKind {
	if err == nil {
		return ""
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	case errors.Is(err, ErrAIQuotaExceeded):
		return FailureBudget
	case errors.Is(err, ErrAIRateLimited):
		return FailureRateLimited
	case errors.Is(err, ErrAINotConfigured):
		return FailureNotConfigured
	default:
		return FailureUnknown
	}
}
