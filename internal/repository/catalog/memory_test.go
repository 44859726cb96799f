package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domcat "github.com/kailas-cloud/catalogai/internal/domain/catalog"
)

func TestMemory_FindInIDOrder(t *testing.T) {
	m := NewMemory(testItems()...)
	q := mustQuery(t, 10, nil, domcat.Group{mustClause(t, "apple", domcat.FieldBrand)})

	got, err := m.Find(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids(got), "inactive item 4 must be excluded")
}

func TestMemory_FindFoldsTurkish(t *testing.T) {
	m := NewMemory(testItems()...)
	q := mustQuery(t, 10, nil, domcat.Group{mustClause(t, "kulaklik", domcat.FieldCategory)})

	got, err := m.Find(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(got))
}

func TestMemory_FindPriceAndLimit(t *testing.T) {
	m := NewMemory(testItems()...)
	lo := 500.0
	pr, err := domcat.NewPriceRange(&lo, nil)
	require.NoError(t, err)

	got, err := m.Find(context.Background(), mustQuery(t, 1, &pr))
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(got))
}

func TestMemory_Upsert(t *testing.T) {
	m := NewMemory(testItems()...)
	require.NoError(t, m.Upsert(context.Background(), []domcat.Item{
		{ID: 1, Title: "Keten Gömlek", Status: domcat.Active},
		{ID: 10, Title: "Deri Çanta", Status: domcat.Active},
	}))

	assert.Equal(t, 5, m.Len())
	got, err := m.Find(context.Background(), mustQuery(t, 10, nil))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 10}, ids(got))
	assert.Equal(t, "Keten Gömlek", got[0].Title)
}

func TestMemory_Empty(t *testing.T) {
	got, err := NewMemory().Find(context.Background(), mustQuery(t, 5, nil))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, NewMemory().Ping(context.Background()))
}
