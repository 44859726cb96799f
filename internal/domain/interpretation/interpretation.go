// Package interpretation holds the outcome of turning a free-text query into filters.
package interpretation

import (
	"time"

	"github.com/kailas-cloud/catalogai/internal/domain"
	"github.com/kailas-cloud/catalogai/internal/domain/search/filter"
)

// Provenance tells which tier produced the filters.
type Provenance string

// Provenance values.
const (
	AISuccess Provenance = "ai_success"
	// AIPartial means the model answered but some of its values were discarded.
	AIPartial Provenance = "ai_partial"
	Fallback  Provenance = "fallback"
)

// IsAI reports whether the filters came from the model.
func (p Provenance) IsAI() bool { return p == AISuccess || p == AIPartial }

// Failure describes why the model tier was not used.
type Failure struct {
	Kind    domain.FailureKind `json:"kind"`
	Message string             `json:"message"`
}

// Result is created once per query and never mutated after it is returned.
type Result struct {
	id         string
	query      string
	filters    filter.Set
	provenance Provenance
	failure    *Failure
	model      string
	createdAt  time.Time
}

// New creates an interpretation result. failure may be nil.
func New(id, query string, f filter.Set, p Provenance, failure *Failure, model string, at time.Time) Result {
	return Result{
		id: id, query: query, filters: f.Clone(), provenance: p,
		failure: failure, model: model, createdAt: at,
	}
}

// ID returns the interpretation identifier.
func (r Result) ID() string { return r.id }

// Query returns the original query.
func (r Result) Query() string { return r.query }

// Filters returns a copy of the extracted filters.
func (r Result) Filters() filter.Set { return r.filters.Clone() }

// Provenance returns which tier produced the filters.
func (r Result) Provenance() Provenance { return r.provenance }

// Success reports whether the model tier produced the filters.
func (r Result) Success() bool { return r.provenance.IsAI() }

// Failure returns the model failure, nil on success.
func (r Result) Failure() *Failure { return r.failure }

// Model returns the model that answered, empty on fallback.
func (r Result) Model() string { return r.model }

// CreatedAt returns when the interpretation was produced.
func (r Result) CreatedAt() time.Time { return r.createdAt }
