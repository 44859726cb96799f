package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func sampleItems() []Item {
	return []Item{
		{ID: 1, Title: "iPhone 15 Pro Max", Brand: "Apple", Category: "Electronics", Price: 1199.99, Status: Active},
		{ID: 2, Title: "Kırmızı Elbise", Brand: "Zara", Category: "Clothing", Price: 59.9, Status: Active},
		{ID: 3, Title: "AirPods Max", Brand: "Apple", Category: "Headphones", Price: 549, Status: Inactive},
		{ID: 4, Title: "Galaxy S24", Brand: "Samsung", Category: "Electronics", Price: 999, Status: Active},
	}
}

func TestNewClause_Validation(t *testing.T) {
	_, err := NewClause("  ", FieldTitle)
	require.Error(t, err)

	_, err = NewClause("apple")
	require.Error(t, err)

	c, err := NewClause(" apple ", FieldBrand)
	require.NoError(t, err)
	assert.Equal(t, "apple", c.Term())
}

func TestNewPriceRange_Validation(t *testing.T) {
	_, err := NewPriceRange(nil, nil)
	require.Error(t, err)

	_, err = NewPriceRange(floatPtr(10), floatPtr(5))
	require.Error(t, err)

	r, err := NewPriceRange(floatPtr(100), floatPtr(500))
	require.NoError(t, err)
	assert.True(t, r.Contains(100))
	assert.False(t, r.Contains(500))
	assert.False(t, r.Contains(99.99))
}

func TestNewQuery_Validation(t *testing.T) {
	_, err := NewQuery(nil, nil, 0)
	require.Error(t, err)

	_, err = NewQuery([]Group{{}}, nil, 10)
	require.Error(t, err)
}

func TestQuery_Filter(t *testing.T) {
	apple, _ := NewClause("apple", FieldBrand)
	q, err := NewQuery([]Group{{apple}}, nil, 10)
	require.NoError(t, err)

	got := q.Filter(sampleItems())
	require.Len(t, got, 1, "inactive items are never returned")
	assert.Equal(t, int64(1), got[0].ID)
}

func TestQuery_FoldedContainment(t *testing.T) {
	c, _ := NewClause("KIRMIZI", TextFields...)
	q, _ := NewQuery([]Group{{c}}, nil, 10)

	got := q.Filter(sampleItems())
	require.Len(t, got, 1)
	assert.Equal(t, "Kırmızı Elbise", got[0].Title)
}

func TestQuery_GroupsAreAnded(t *testing.T) {
	electronics, _ := NewClause("electronics", FieldCategory)
	samsung, _ := NewClause("samsung", FieldBrand)
	apple, _ := NewClause("apple", FieldBrand)
	q, _ := NewQuery([]Group{{electronics}, {samsung, apple}}, nil, 10)

	got := q.Filter(sampleItems())
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}

func TestQuery_PriceAndLimit(t *testing.T) {
	r, _ := NewPriceRange(floatPtr(500), nil)
	q, _ := NewQuery(nil, &r, 1)

	got := q.Filter(sampleItems())
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}
