package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogai/internal/domain"
	"github.com/kailas-cloud/catalogai/internal/domain/catalog"
	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
	"github.com/kailas-cloud/catalogai/internal/domain/search/filter"
	"github.com/kailas-cloud/catalogai/internal/domain/search/mode"
)

type fakeCatalog struct {
	items []catalog.Item
	err   error
	// failPriced fails only queries carrying a price range.
	failPriced bool

	mu      sync.Mutex
	queries []catalog.Query
}

func (f *fakeCatalog) Find(_ context.Context, q catalog.Query) ([]catalog.Item, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.failPriced && q.Price() != nil {
		return nil, domain.ErrCatalogUnavailable
	}
	return q.Filter(f.items), nil
}

type fakeInterpreter struct {
	filters filter.Set
	err     error
}

func (f *fakeInterpreter) Interpret(_ context.Context, query string) (interpretation.Result, error) {
	if f.err != nil {
		return interpretation.Result{}, f.err
	}
	return interpretation.New("id", query, f.filters, interpretation.AISuccess, nil, "test", time.Now()), nil
}

func testItems() []catalog.Item {
	return []catalog.Item{
		{ID: 1, Title: "Apple AirPods Max", Brand: "Apple", Description: "Silver over-ear headphones", Category: "Kulaklık", Price: 549.99, Status: catalog.Active},
		{ID: 2, Title: "Sony WH-1000XM5", Brand: "Sony", Description: "Black wireless noise cancelling", Category: "Kulaklık", Price: 349, Status: catalog.Active},
		{ID: 3, Title: "Apple iPhone 15", Brand: "Apple", Description: "Smartphone", Category: "Telefon", Price: 1199, Status: catalog.Active},
		{ID: 4, Title: "Apple EarPods", Brand: "Apple", Description: "Wired", Category: "Kulaklık", Price: 19, Status: catalog.Inactive},
	}
}

func newService(cat Catalog, interp Interpreter) *Service {
	return New(cat, interp, Config{DefaultLimit: 20, MaxLimit: 100}, zap.NewNop())
}

func ids(items []catalog.Item) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestSearch_AppleHeadphones(t *testing.T) {
	interp := &fakeInterpreter{filters: filter.Set{
		Category:  "headphones",
		Brand:     "Apple",
		PriceTier: filter.Premium,
		Keywords:  []string{"apple", "marka", "pahalı", "kulaklık"},
	}}
	s := newService(&fakeCatalog{items: testItems()}, interp)

	got, res, err := s.Search(context.Background(), "Apple marka pahalı kulaklık", 0)
	require.NoError(t, err)

	assert.Equal(t, "Apple marka pahalı kulaklık", got.Query())
	assert.Equal(t, mode.Enhanced, res.Method())
	assert.Equal(t, 0, res.BasicCount())
	assert.Equal(t, 1, res.EnhancedCount())
	require.NotEmpty(t, res.Items())
	assert.Equal(t, int64(1), res.Items()[0].ID)
}

func TestCombine_BasicWinsWhenFiltersMatchNothing(t *testing.T) {
	s := newService(&fakeCatalog{items: testItems()}, nil)

	res, err := s.Combine(context.Background(), "iphone", filter.Set{Brand: "Samsung"}, 10)
	require.NoError(t, err)

	assert.Equal(t, mode.Basic, res.Method())
	assert.Equal(t, []int64{3}, ids(res.Items()))
	assert.Equal(t, 1, res.BasicCount())
	assert.Equal(t, 0, res.EnhancedCount())
}

func TestCombine_EnhancedWinsTie(t *testing.T) {
	s := newService(&fakeCatalog{items: testItems()}, nil)

	res, err := s.Combine(context.Background(), "kulaklık", filter.Set{Category: "headphones", Color: "black"}, 10)
	require.NoError(t, err)

	assert.Equal(t, mode.Enhanced, res.Method())
	assert.Equal(t, 2, res.BasicCount())
	assert.Equal(t, 2, res.EnhancedCount())
	// Sony mentions the requested color and outranks the lower id.
	assert.Equal(t, []int64{2, 1}, ids(res.Items()))
}

func TestCombine_PriceTiers(t *testing.T) {
	s := newService(&fakeCatalog{items: testItems()}, nil)

	res, err := s.Combine(context.Background(), "kulaklık", filter.Set{PriceTier: filter.Medium}, 10)
	require.NoError(t, err)

	// Enhanced found 1 against basic's 2, so basic is returned.
	assert.Equal(t, mode.Basic, res.Method())
	assert.Equal(t, 1, res.EnhancedCount())
}

func TestCombine_SkipsEnhancedWithoutPredicates(t *testing.T) {
	cat := &fakeCatalog{items: testItems()}
	s := newService(cat, nil)

	res, err := s.Combine(context.Background(), "sony", filter.Set{Color: "red", Keywords: []string{"ab"}}, 10)
	require.NoError(t, err)

	assert.Equal(t, mode.Basic, res.Method())
	assert.Equal(t, []int64{2}, ids(res.Items()))
	assert.Len(t, cat.queries, 1)
}

func TestCombine_EmptyFilters(t *testing.T) {
	cat := &fakeCatalog{items: testItems()}
	s := newService(cat, nil)

	res, err := s.Combine(context.Background(), "apple", filter.Set{}, 10)
	require.NoError(t, err)

	assert.Equal(t, mode.Basic, res.Method())
	assert.Equal(t, []int64{1, 3}, ids(res.Items()))
	assert.Len(t, cat.queries, 1)
}

func TestCombine_EnhancedFailureFallsBackToBasic(t *testing.T) {
	s := newService(&fakeCatalog{items: testItems(), failPriced: true}, nil)

	res, err := s.Combine(context.Background(), "apple", filter.Set{PriceTier: filter.Premium}, 10)
	require.NoError(t, err)

	assert.Equal(t, mode.Basic, res.Method())
	assert.Equal(t, 0, res.EnhancedCount())
	assert.Equal(t, []int64{1, 3}, ids(res.Items()))
}

func TestCombine_BasicFailure(t *testing.T) {
	s := newService(&fakeCatalog{err: domain.ErrCatalogUnavailable}, nil)

	_, err := s.Combine(context.Background(), "apple", filter.Set{Brand: "Apple"}, 10)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestCombine_EmptyCatalog(t *testing.T) {
	s := newService(&fakeCatalog{}, nil)

	res, err := s.Combine(context.Background(), "telefon", filter.Set{Category: "phone"}, 10)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Count())
	assert.NotNil(t, res.Items())
	assert.Equal(t, mode.Enhanced, res.Method())
}

func TestCombine_LimitApplied(t *testing.T) {
	s := newService(&fakeCatalog{items: testItems()}, nil)

	res, err := s.Combine(context.Background(), "apple", filter.Set{Brand: "Apple"}, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Count())
}

func TestCombine_InvalidQuery(t *testing.T) {
	s := newService(&fakeCatalog{items: testItems()}, nil)

	_, err := s.Combine(context.Background(), "   ", filter.Set{}, 10)
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestSearch_InterpreterError(t *testing.T) {
	boom := errors.New("boom")
	s := newService(&fakeCatalog{items: testItems()}, &fakeInterpreter{err: boom})

	_, _, err := s.Search(context.Background(), "apple", 10)
	assert.ErrorIs(t, err, boom)
}

func TestSuggest(t *testing.T) {
	s := newService(&fakeCatalog{items: testItems()}, nil)

	got, err := s.Suggest(context.Background(), "ap", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple AirPods Max", "Apple iPhone 15", "Apple"}, got)

	got, err = s.Suggest(context.Background(), "ap", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple AirPods Max", "Apple iPhone 15"}, got)
}

func TestSuggest_ShortPartial(t *testing.T) {
	cat := &fakeCatalog{items: testItems()}
	s := newService(cat, nil)

	got, err := s.Suggest(context.Background(), " a ", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Empty(t, cat.queries)
}

func TestPriceTiers_Range(t *testing.T) {
	tiers := DefaultPriceTiers

	budget, ok := tiers.Range(filter.Budget)
	require.True(t, ok)
	assert.True(t, budget.Contains(99.99))
	assert.False(t, budget.Contains(100))

	medium, ok := tiers.Range(filter.Medium)
	require.True(t, ok)
	assert.True(t, medium.Contains(100))
	assert.False(t, medium.Contains(500))

	premium, ok := tiers.Range(filter.Premium)
	require.True(t, ok)
	assert.True(t, premium.Contains(500))

	_, ok = tiers.Range("cheap")
	assert.False(t, ok)
}

func TestNew_InvalidTiersFallBack(t *testing.T) {
	s := New(&fakeCatalog{}, nil, Config{Tiers: PriceTiers{BudgetBelow: 500, PremiumFrom: 100}}, zap.NewNop())
	assert.Equal(t, DefaultPriceTiers, s.cfg.Tiers)
}
