package catalogai

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (g *stubGenerator) Generate(_ context.Context, _ GenerationRequest) (GenerationResult, error) {
	g.calls++
	if g.err != nil {
		return GenerationResult{}, g.err
	}
	return GenerationResult{Text: g.text, Model: "stub-1", TotalTokens: 42}, nil
}

func testProducts() []Product {
	return []Product{
		{ID: 1, Title: "AirPods Pro", Brand: "Apple", Description: "Aktif gürültü engelleme", Category: "Kulaklık", Price: 249.99, Stock: 10},
		{ID: 2, Title: "AirPods Max", Brand: "Apple", Description: "Kulak üstü kulaklık", Category: "Kulaklık", Price: 549.99, Stock: 4},
		{ID: 3, Title: "Galaxy Buds", Brand: "Samsung", Description: "Kablosuz kulaklık", Category: "Kulaklık", Price: 149.99, Stock: 7},
		{ID: 4, Title: "EarPods", Brand: "Apple", Description: "Kablolu kulaklık", Category: "Kulaklık", Price: 19.99, Inactive: true},
	}
}

func TestClient_FallbackWithoutModel(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, WithProducts(testProducts()...))
	require.NoError(t, err)
	defer c.Close()

	res, err := c.Search(ctx, "Apple marka pahalı kulaklık", 10)
	require.NoError(t, err)

	assert.Equal(t, ProvenanceFallback, res.Interpretation.Provenance)
	assert.False(t, res.Interpretation.AIEnhanced())
	require.NotNil(t, res.Interpretation.Failure)
	assert.Equal(t, "not_configured", res.Interpretation.Failure.Kind)
	assert.Equal(t, "Apple", res.Interpretation.Filters.Brand)
	assert.Equal(t, "premium", res.Interpretation.Filters.PriceTier)

	require.NotEmpty(t, res.Products)
	for _, p := range res.Products {
		assert.Equal(t, "Apple", p.Brand)
		assert.False(t, p.Inactive)
	}
}

func TestClient_ModelAnswer(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{text: "```json\n{\"category\": \"kulaklık\", \"brand\": \"Samsung\", \"keywords\": [\"kablosuz\"]}\n```"}

	c, err := New(ctx, WithProducts(testProducts()...), WithGenerator(gen))
	require.NoError(t, err)
	defer c.Close()

	interp, err := c.Interpret(ctx, "samsung kulaklık")
	require.NoError(t, err)
	assert.Equal(t, ProvenanceAI, interp.Provenance)
	assert.True(t, interp.AIEnhanced())
	assert.Equal(t, "stub-1", interp.Model)
	assert.Equal(t, "Samsung", interp.Filters.Brand)
	assert.Nil(t, interp.Failure)
	assert.Equal(t, 1, gen.calls)

	usage := c.Usage(ctx, PeriodTotal)
	assert.Equal(t, 1, usage.Requests)
	assert.Equal(t, 42, usage.Tokens)
}

func TestClient_ModelErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{err: errors.New("boom")}

	c, err := New(ctx, WithProducts(testProducts()...), WithGenerator(gen))
	require.NoError(t, err)
	defer c.Close()

	interp, err := c.Interpret(ctx, "ucuz telefon")
	require.NoError(t, err)
	assert.Equal(t, ProvenanceFallback, interp.Provenance)
	assert.Equal(t, "budget", interp.Filters.PriceTier)
	require.NotNil(t, interp.Failure)
}

func TestClient_EmptyQuery(t *testing.T) {
	c, err := New(context.Background())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Interpret(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = c.Search(context.Background(), "", 0)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestClient_Suggest(t *testing.T) {
	c, err := New(context.Background(), WithProducts(testProducts()...))
	require.NoError(t, err)
	defer c.Close()

	out, err := c.Suggest(context.Background(), "airp", 5)
	require.NoError(t, err)
	assert.Contains(t, out, "AirPods Pro")
	assert.NotContains(t, out, "EarPods")
}

func TestClient_ValidateAndAnalyze(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx)
	require.NoError(t, err)
	defer c.Close()

	rep, err := c.ValidateField(ctx, "title", "ab", "")
	require.NoError(t, err)
	assert.False(t, rep.IsValid)
	assert.Equal(t, ProvenanceFallback, rep.Provenance)

	_, err = c.ValidateField(ctx, "title", "", "")
	assert.ErrorIs(t, err, ErrEmptyContent)

	a, err := c.AnalyzeProduct(ctx, ProductInput{Title: "Apple AirPods Pro 2. Nesil", Price: 249.99})
	require.NoError(t, err)
	assert.Equal(t, 50, a.Completeness)
	assert.Equal(t, "fair", a.Readiness)

	_, err = c.AnalyzeProduct(ctx, ProductInput{})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestClient_Health(t *testing.T) {
	c, err := New(context.Background())
	require.NoError(t, err)
	defer c.Close()

	h := c.Health(context.Background())
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "ok", h.Checks["catalog"])
}

func TestClient_Prometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(context.Background(), WithPrometheus(reg))
	require.NoError(t, err)
	defer c.Close()

	_, _ = c.Interpret(context.Background(), "telefon")
	_, _ = c.Interpret(context.Background(), "")

	assert.InDelta(t, 1, testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("interpret", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("interpret", "error")), 0)

	// a second client on the same registry reuses the collectors
	c2, err := New(context.Background(), WithPrometheus(reg))
	require.NoError(t, err)
	c2.Close()
}

func TestNew_ConflictingCatalogs(t *testing.T) {
	_, err := New(context.Background(), WithRedis("localhost:6379", ""), WithSQL("sqlite3", ":memory:"))
	assert.Error(t, err)
}

func TestNew_BadSeedFile(t *testing.T) {
	_, err := New(context.Background(), WithSeedFile("does-not-exist.yaml"))
	assert.Error(t, err)
}
