package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/catalogai/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length in runes.
	MaxQueryLength = 500
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Request is a validated search query.
type Request struct {
	query string
	limit int
}

// New validates and normalizes search parameters. The query is trimmed;
// limit defaults to defaultLimit and is clamped to maxLimit.
// Zero defaultLimit/maxLimit fall back to the package defaults.
func New(query string, limit, defaultLimit, maxLimit int) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, domain.ErrEmptyQuery
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w (max %d chars)", domain.ErrQueryTooLong, MaxQueryLength)
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Request{query: query, limit: limit}, nil
}

// Query returns the trimmed query text.
func (r Request) Query() string { return r.query }

// Limit returns the maximum results to return.
func (r Request) Limit() int { return r.limit }
