// Package search combines plain-text matching with interpreted filters and
// picks whichever candidate set serves the query better.
package search

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/catalogai/internal/domain"
	"github.com/kailas-cloud/catalogai/internal/domain/catalog"
	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
	"github.com/kailas-cloud/catalogai/internal/domain/search/filter"
	"github.com/kailas-cloud/catalogai/internal/domain/search/mode"
	"github.com/kailas-cloud/catalogai/internal/domain/search/request"
	"github.com/kailas-cloud/catalogai/internal/domain/search/result"
	"github.com/kailas-cloud/catalogai/internal/lexicon"
	"github.com/kailas-cloud/catalogai/internal/metrics"
)

// minKeywordLen is the shortest keyword (in runes) used as a predicate.
const minKeywordLen = 3

// Relevance weights.
const (
	queryHitScore   = 3
	keywordHitScore = 1
	attrHitScore    = 1
)

// DefaultSuggestLimit is the number of suggestions when none is requested.
const DefaultSuggestLimit = 5

// Config holds search limits and price tiers.
type Config struct {
	DefaultLimit int
	MaxLimit     int
	Tiers        PriceTiers
}

// Service runs basic and filter-based searches. Safe for concurrent use.
type Service struct {
	catalog Catalog
	interp  Interpreter
	cfg     Config
	logger  *zap.Logger
}

// New creates a search service. Zero tiers fall back to DefaultPriceTiers.
func New(cat Catalog, interp Interpreter, cfg Config, logger *zap.Logger) *Service {
	if cfg.Tiers.Validate() != nil {
		cfg.Tiers = DefaultPriceTiers
	}
	return &Service{catalog: cat, interp: interp, cfg: cfg, logger: logger}
}

// Search interprets query and combines the outcome with a plain-text search.
func (s *Service) Search(ctx context.Context, query string, limit int) (interpretation.Result, result.Result, error) {
	req, err := request.New(query, limit, s.cfg.DefaultLimit, s.cfg.MaxLimit)
	if err != nil {
		return interpretation.Result{}, result.Result{}, err
	}

	interp, err := s.interp.Interpret(ctx, req.Query())
	if err != nil {
		return interpretation.Result{}, result.Result{}, fmt.Errorf("interpret: %w", err)
	}

	res, err := s.combine(ctx, req, interp.Filters())
	if err != nil {
		return interp, result.Result{}, err
	}
	return interp, res, nil
}

// Combine runs the basic search and, when filters constrain anything, the
// enhanced search. The enhanced set wins when it is at least as large.
func (s *Service) Combine(ctx context.Context, query string, f filter.Set, limit int) (result.Result, error) {
	req, err := request.New(query, limit, s.cfg.DefaultLimit, s.cfg.MaxLimit)
	if err != nil {
		return result.Result{}, err
	}
	return s.combine(ctx, req, f)
}

func (s *Service) combine(ctx context.Context, req request.Request, f filter.Set) (result.Result, error) {
	basicQ, err := s.basicQuery(req)
	if err != nil {
		return result.Result{}, err
	}
	enhancedQ, hasEnhanced, err := s.enhancedQuery(f, req.Limit())
	if err != nil {
		return result.Result{}, err
	}

	var basic, enhanced []catalog.Item
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.catalog.Find(gctx, basicQ)
		if err != nil {
			return fmt.Errorf("basic search: %w", err)
		}
		basic = items
		return nil
	})
	if hasEnhanced {
		g.Go(func() error {
			items, err := s.catalog.Find(gctx, enhancedQ)
			if err != nil {
				s.logger.Warn("Enhanced search failed, using basic results", zap.Error(err))
				hasEnhanced = false
				return nil
			}
			enhanced = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result.Result{}, err
	}

	var res result.Result
	if hasEnhanced && len(enhanced) >= len(basic) {
		res = result.New(rank(enhanced, req.Query(), f), mode.Enhanced, len(basic), len(enhanced))
	} else {
		res = result.New(basic, mode.Basic, len(basic), len(enhanced))
	}

	metrics.SearchesTotal.WithLabelValues(string(res.Method())).Inc()
	metrics.SearchResultsCount.Observe(float64(res.Count()))
	return res, nil
}

func (s *Service) basicQuery(req request.Request) (catalog.Query, error) {
	c, err := catalog.NewClause(req.Query(), catalog.TextFields...)
	if err != nil {
		return catalog.Query{}, domain.ErrEmptyQuery
	}
	q, err := catalog.NewQuery([]catalog.Group{{c}}, nil, req.Limit())
	if err != nil {
		return catalog.Query{}, fmt.Errorf("basic query: %w", err)
	}
	return q, nil
}

// enhancedQuery translates filters into catalog predicates: brand, category
// (with synonyms), price tier and keywords. ok is false when no key maps to
// a predicate, so the enhanced search is skipped instead of matching everything.
func (s *Service) enhancedQuery(f filter.Set, limit int) (q catalog.Query, ok bool, err error) {
	if f.IsEmpty() {
		return catalog.Query{}, false, nil
	}

	var groups []catalog.Group
	if f.Brand != "" {
		c, err := catalog.NewClause(f.Brand, catalog.FieldBrand)
		if err != nil {
			return catalog.Query{}, false, err
		}
		groups = append(groups, catalog.Group{c})
	}

	if f.Category != "" {
		var g catalog.Group
		for _, syn := range lexicon.Synonyms(lexicon.Category, f.Category) {
			if len(g) == catalog.MaxClausesPerGroup {
				break
			}
			c, err := catalog.NewClause(syn, catalog.FieldCategory)
			if err != nil {
				continue
			}
			g = append(g, c)
		}
		if len(g) > 0 {
			groups = append(groups, g)
		}
	}

	var kw catalog.Group
	for _, k := range f.Keywords {
		if utf8.RuneCountInString(strings.TrimSpace(k)) < minKeywordLen {
			continue
		}
		if len(kw) == catalog.MaxClausesPerGroup {
			break
		}
		c, err := catalog.NewClause(k, catalog.ContentFields...)
		if err != nil {
			continue
		}
		kw = append(kw, c)
	}
	if len(kw) > 0 {
		groups = append(groups, kw)
	}

	var price *catalog.PriceRange
	if f.PriceTier != "" {
		if r, known := s.cfg.Tiers.Range(f.PriceTier); known {
			price = &r
		}
	}

	if len(groups) == 0 && price == nil {
		return catalog.Query{}, false, nil
	}

	q, err = catalog.NewQuery(groups, price, limit)
	if err != nil {
		return catalog.Query{}, false, fmt.Errorf("enhanced query: %w", err)
	}
	return q, true, nil
}

// rank orders items by relevance, keeping catalog order between equal scores.
func rank(items []catalog.Item, query string, f filter.Set) []catalog.Item {
	type scored struct {
		item  catalog.Item
		score int
	}
	ss := make([]scored, len(items))
	for i, it := range items {
		ss[i] = scored{item: it, score: score(it, query, f)}
	}
	slices.SortStableFunc(ss, func(a, b scored) int { return b.score - a.score })

	out := make([]catalog.Item, len(ss))
	for i, s := range ss {
		out[i] = s.item
	}
	return out
}

func score(it catalog.Item, query string, f filter.Set) int {
	total := 0
	if anyField(it, catalog.TextFields, query) {
		total += queryHitScore
	}
	for _, k := range f.Keywords {
		if utf8.RuneCountInString(k) >= minKeywordLen && anyField(it, catalog.ContentFields, k) {
			total += keywordHitScore
		}
	}
	attrs := []struct {
		kind  lexicon.Kind
		value string
	}{
		{lexicon.Color, f.Color},
		{lexicon.Material, f.Material},
		{lexicon.Style, f.Style},
	}
	for _, a := range attrs {
		if a.value == "" {
			continue
		}
		for _, syn := range lexicon.Synonyms(a.kind, a.value) {
			if anyField(it, catalog.ContentFields, syn) {
				total += attrHitScore
				break
			}
		}
	}
	return total
}

func anyField(it catalog.Item, fields []catalog.Field, term string) bool {
	for _, f := range fields {
		if lexicon.Contains(it.Value(f), term) {
			return true
		}
	}
	return false
}

// Suggest returns distinct titles and brands of active items containing
// partial. Partials shorter than two runes yield no suggestions.
func (s *Service) Suggest(ctx context.Context, partial string, limit int) ([]string, error) {
	partial = strings.TrimSpace(partial)
	if utf8.RuneCountInString(partial) < 2 {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	if hi := s.cfg.MaxLimit; hi > 0 && limit > hi {
		limit = hi
	}

	c, err := catalog.NewClause(partial, catalog.FieldTitle, catalog.FieldBrand)
	if err != nil {
		return []string{}, nil
	}
	q, err := catalog.NewQuery([]catalog.Group{{c}}, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest query: %w", err)
	}
	items, err := s.catalog.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit*2)
	add := func(v string) {
		key := lexicon.Fold(v)
		if _, dup := seen[key]; dup || len(out) >= limit {
			return
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	for _, it := range items {
		if lexicon.Contains(it.Title, partial) {
			add(it.Title)
		}
	}
	for _, it := range items {
		if it.Brand != "" && lexicon.Contains(it.Brand, partial) {
			add(it.Brand)
		}
	}
	return out, nil
}
