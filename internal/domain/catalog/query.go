package catalog

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/catalogai/internal/lexicon"
)

// MaxGroups is the maximum number of AND-ed groups in a query.
const MaxGroups = 16

// MaxClausesPerGroup is the maximum number of OR-ed clauses per group.
const MaxClausesPerGroup = 64

// Clause matches when any of its fields contains term, case-insensitively.
type Clause struct {
	term   string
	fields []Field
}

// NewClause validates and creates a Clause.
func NewClause(term string, fields ...Field) (Clause, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Clause{}, fmt.Errorf("clause term is required")
	}
	if len(fields) == 0 {
		return Clause{}, fmt.Errorf("clause %q has no fields", term)
	}
	return Clause{term: term, fields: fields}, nil
}

// Term returns the substring to look for.
func (c Clause) Term() string { return c.term }

// Fields returns the fields searched.
func (c Clause) Fields() []Field { return c.fields }

// Matches reports whether any field of it contains the term.
func (c Clause) Matches(it Item) bool {
	for _, f := range c.fields {
		if lexicon.Contains(it.Value(f), c.term) {
			return true
		}
	}
	return false
}

// Group is a disjunction of clauses.
type Group []Clause

// Matches reports whether at least one clause matches.
func (g Group) Matches(it Item) bool {
	for _, c := range g {
		if c.Matches(it) {
			return true
		}
	}
	return false
}

// PriceRange bounds the price: min inclusive, max exclusive. Nil bounds are open.
type PriceRange struct {
	min *float64
	max *float64
}

// NewPriceRange validates and creates a PriceRange.
func NewPriceRange(lo, hi *float64) (PriceRange, error) {
	if lo == nil && hi == nil {
		return PriceRange{}, fmt.Errorf("at least one price bound is required")
	}
	if lo != nil && hi != nil && *lo >= *hi {
		return PriceRange{}, fmt.Errorf("price range is empty: [%g, %g)", *lo, *hi)
	}
	return PriceRange{min: lo, max: hi}, nil
}

// Min returns the inclusive lower bound.
func (r PriceRange) Min() *float64 { return r.min }

// Max returns the exclusive upper bound.
func (r PriceRange) Max() *float64 { return r.max }

// Contains reports whether price falls within the range.
func (r PriceRange) Contains(price float64) bool {
	if r.min != nil && price < *r.min {
		return false
	}
	if r.max != nil && price >= *r.max {
		return false
	}
	return true
}

// Query selects active items: every group must match and the price must be
// within range when one is set. Results are capped at limit.
type Query struct {
	groups []Group
	price  *PriceRange
	limit  int
}

// NewQuery validates and creates a Query.
func NewQuery(groups []Group, price *PriceRange, limit int) (Query, error) {
	if limit <= 0 {
		return Query{}, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if len(groups) > MaxGroups {
		return Query{}, fmt.Errorf("too many groups (max %d)", MaxGroups)
	}
	for i, g := range groups {
		if len(g) == 0 {
			return Query{}, fmt.Errorf("group %d is empty", i)
		}
		if len(g) > MaxClausesPerGroup {
			return Query{}, fmt.Errorf("group %d has too many clauses (max %d)", i, MaxClausesPerGroup)
		}
	}
	return Query{groups: groups, price: price, limit: limit}, nil
}

// Groups returns the AND-ed clause groups.
func (q Query) Groups() []Group { return q.groups }

// Price returns the price range, nil when unbounded.
func (q Query) Price() *PriceRange { return q.price }

// Limit returns the maximum number of items.
func (q Query) Limit() int { return q.limit }

// Matches evaluates the query against a single item, status included.
func (q Query) Matches(it Item) bool {
	if !it.IsActive() {
		return false
	}
	if q.price != nil && !q.price.Contains(it.Price) {
		return false
	}
	for _, g := range q.groups {
		if !g.Matches(it) {
			return false
		}
	}
	return true
}

// Filter applies q to items in order and stops at the limit.
func (q Query) Filter(items []Item) []Item {
	out := make([]Item, 0, min(len(items), q.limit))
	for _, it := range items {
		if len(out) >= q.limit {
			break
		}
		if q.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}
