package catalogai

import "github.com/kailas-cloud/catalogai/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmptyQuery         = domain.ErrEmptyQuery
	ErrQueryTooLong       = domain.ErrQueryTooLong
	ErrEmptyContent       = domain.ErrEmptyContent
	ErrInvalidProduct     = domain.ErrInvalidProduct
	ErrCatalogUnavailable = domain.ErrCatalogUnavailable
)
