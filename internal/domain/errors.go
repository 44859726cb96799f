package domain

import (
	"errors"
)

var (
	// ErrEmptyQuery signals a blank search or interpretation query.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrQueryTooLong signals a query above the accepted length.
	ErrQueryTooLong = errors.New("query too long")
	// ErrEmptyContent signals a validation request without field name or content.
	ErrEmptyContent = errors.New("field and content are required")
	// ErrInvalidProduct signals a product analysis request with nothing to analyze.
	ErrInvalidProduct = errors.New("product has no analyzable fields")

	// ErrAINotConfigured signals that no model provider or API key is set.
	ErrAINotConfigured = errors.New("ai provider not configured")
	// ErrAIQuotaExceeded signals an exhausted token budget.
	ErrAIQuotaExceeded = errors.New("ai token quota exceeded")
	// ErrAIRateLimited signals the local outbound rate limit was hit.
	ErrAIRateLimited = errors.New("ai rate limited")
	// ErrAIProviderError signals a model provider failure.
	ErrAIProviderError = errors.New("ai provider error")

	// ErrCatalogUnavailable signals the catalog backend could not be queried.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
