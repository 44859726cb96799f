package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/catalogai/internal/db"
	domcat "github.com/kailas-cloud/catalogai/internal/domain/catalog"
)

// mockHashStore implements the Redis consumer interface for tests.
type mockHashStore struct {
	hashes         map[string]map[string]string
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	multiCalls     int
}

func newMockHashStore() *mockHashStore {
	return &mockHashStore{hashes: map[string]map[string]string{}}
}

func (m *mockHashStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	for _, it := range items {
		m.hashes[it.Key] = it.Fields
	}
	return nil
}

func (m *mockHashStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	m.multiCalls++
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = m.hashes[k]
	}
	return out, nil
}

func (m *mockHashStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	keys := make([]string, 0, len(m.hashes))
	for k := range m.hashes {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *mockHashStore) Ping(context.Context) error { return nil }

func testItems() []domcat.Item {
	return []domcat.Item{
		{ID: 3, Title: "AirPods Max", Brand: "Apple", Category: "Kulaklık", Price: 1299, Status: domcat.Active},
		{ID: 1, Title: "Pamuklu Tişört", Brand: "LCW", Category: "Giyim", Price: 79.9, Status: domcat.Active},
		{ID: 2, Title: "iPhone 15", Brand: "Apple", Category: "Telefon", Price: 999, Status: domcat.Active},
		{ID: 4, Title: "Eski Kulaklık", Brand: "Apple", Category: "Kulaklık", Price: 50, Status: domcat.Inactive},
	}
}

func mustQuery(t *testing.T, limit int, price *domcat.PriceRange, groups ...domcat.Group) domcat.Query {
	t.Helper()
	q, err := domcat.NewQuery(groups, price, limit)
	require.NoError(t, err)
	return q
}

func mustClause(t *testing.T, term string, fields ...domcat.Field) domcat.Clause {
	t.Helper()
	c, err := domcat.NewClause(term, fields...)
	require.NoError(t, err)
	return c
}

func ids(items []domcat.Item) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
