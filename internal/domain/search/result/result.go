package result

import (
	"github.com/kailas-cloud/catalogai/internal/domain/catalog"
	"github.com/kailas-cloud/catalogai/internal/domain/search/mode"
)

// Result is the final ranked candidate set of a search.
type Result struct {
	items         []catalog.Item
	method        mode.Mode
	basicCount    int
	enhancedCount int
}

// New creates a search result. items is never nil in the returned value.
func New(items []catalog.Item, method mode.Mode, basicCount, enhancedCount int) Result {
	if items == nil {
		items = []catalog.Item{}
	}
	return Result{
		items: items, method: method,
		basicCount: basicCount, enhancedCount: enhancedCount,
	}
}

// Items returns the ranked products.
func (r *Result) Items() []catalog.Item { return r.items }

// Method returns which candidate set was selected.
func (r *Result) Method() mode.Mode { return r.method }

// Count returns the number of returned items.
func (r *Result) Count() int { return len(r.items) }

// BasicCount returns how many items the plain substring search found.
func (r *Result) BasicCount() int { return r.basicCount }

// EnhancedCount returns how many items the filtered search found (0 when skipped).
func (r *Result) EnhancedCount() int { return r.enhancedCount }
