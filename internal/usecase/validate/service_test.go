package validate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogai/internal/domain"
	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
	"github.com/kailas-cloud/catalogai/internal/domain/validation"
)

type mockGenerator struct {
	text     string
	err      error
	requests []domain.GenerationRequest
}

func (m *mockGenerator) Generate(_ context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return domain.GenerationResult{}, m.err
	}
	return domain.GenerationResult{Text: m.text, Model: "test"}, nil
}

func TestValidateField_Rules(t *testing.T) {
	s := New(nil, Config{}, zap.NewNop())

	tests := []struct {
		name    string
		field   string
		content string
		valid   bool
		issue   string
	}{
		{"short title", "title", "ab", false, "too short (minimum 3"},
		{"good title", "title", "Apple AirPods Max", true, ""},
		{"negative price", "price", "-5", false, "at least 0.01"},
		{"zero price", "price", "0", false, "at least 0.01"},
		{"text price", "price", "ucuz", false, "valid number"},
		{"good price", "price", " 19.99 ", true, ""},
		{"nan price", "price", "NaN", false, "valid number"},
		{"inf price", "price", "Inf", false, "valid number"},
		{"signed inf price", "price", "+Inf", false, "valid number"},
		{"hex price", "price", "0x1p-2", false, "valid number"},
		{"overflow price", "price", "1e400", false, "valid number"},
		{"exponent price", "price", "1.5e2", true, ""},
		{"meta alias short", "meta_seo", "Kısa açıklama", false, "minimum 50"},
		{"long brand", "brand", strings.Repeat("x", 101), false, "maximum 100"},
		{"unknown field", "warranty", "2 yıl", true, ""},
		{"turkish runes", "brand", "Şı", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := s.ValidateField(context.Background(), tt.field, tt.content, "")
			require.NoError(t, err)
			assert.Equal(t, tt.valid, rep.IsValid)
			assert.Equal(t, interpretation.Fallback, rep.Provenance)
			require.NotNil(t, rep.Failure)
			assert.Equal(t, domain.FailureNotConfigured, rep.Failure.Kind)
			if tt.issue != "" {
				require.NotEmpty(t, rep.Issues)
				assert.Contains(t, rep.Issues[0], tt.issue)
				assert.True(t, strings.HasPrefix(rep.Message, "Issues found: "))
			} else {
				assert.Empty(t, rep.Issues)
				assert.True(t, strings.HasPrefix(rep.Message, "Basic validation passed. "))
			}
		})
	}
}

func TestValidateField_MetaAlias(t *testing.T) {
	s := New(nil, Config{}, zap.NewNop())
	rep, err := s.ValidateField(context.Background(), "seo", strings.Repeat("a", 150), "")
	require.NoError(t, err)
	assert.Equal(t, validation.Meta, rep.Field)
	assert.True(t, rep.IsValid)
	assert.Contains(t, rep.Message, "150-160 characters")
}

func TestValidateField_EmptyInput(t *testing.T) {
	s := New(nil, Config{}, zap.NewNop())

	_, err := s.ValidateField(context.Background(), "", "content", "")
	assert.ErrorIs(t, err, domain.ErrEmptyContent)

	_, err = s.ValidateField(context.Background(), "title", "   ", "")
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestValidateField_AI(t *testing.T) {
	gen := &mockGenerator{text: "  Title is clear. Consider adding the color.  "}
	s := New(gen, Config{Configured: true}, zap.NewNop())

	rep, err := s.ValidateField(context.Background(), "title", "ab", "Kulaklık")
	require.NoError(t, err)

	assert.Equal(t, interpretation.AISuccess, rep.Provenance)
	assert.Nil(t, rep.Failure)
	assert.Equal(t, "Title is clear. Consider adding the color.", rep.Analysis)
	// The verdict stays rule based even when the model answers.
	assert.False(t, rep.IsValid)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Contains(t, req.Prompt, "Evaluate this product title: 'ab'")
	assert.True(t, strings.HasSuffix(req.Prompt, " Note: This is for a Kulaklık product."))
	assert.False(t, req.JSON)
	assert.InDelta(t, DefaultTemperature, req.Temperature, 1e-6)
}

func TestValidateField_UnknownFieldPrompt(t *testing.T) {
	gen := &mockGenerator{text: "ok"}
	s := New(gen, Config{Configured: true}, zap.NewNop())

	_, err := s.ValidateField(context.Background(), "Warranty", "2 yıl", "")
	require.NoError(t, err)
	assert.Equal(t, "Analyze this warranty: '2 yıl'. Provide brief evaluation and suggestions.", gen.requests[0].Prompt)
}

func TestValidateField_AIFailure(t *testing.T) {
	gen := &mockGenerator{err: domain.NewStatusError(429, "", nil)}
	s := New(gen, Config{Configured: true}, zap.NewNop())

	rep, err := s.ValidateField(context.Background(), "price", "12.5", "")
	require.NoError(t, err)

	assert.True(t, rep.IsValid)
	assert.Equal(t, interpretation.Fallback, rep.Provenance)
	require.NotNil(t, rep.Failure)
	assert.Equal(t, domain.FailureRateLimited, rep.Failure.Kind)
	assert.Empty(t, rep.Analysis)
}

func TestValidateField_EmptyModelText(t *testing.T) {
	s := New(&mockGenerator{text: "  "}, Config{Configured: true}, zap.NewNop())

	rep, err := s.ValidateField(context.Background(), "title", "Apple AirPods Max", "")
	require.NoError(t, err)
	require.NotNil(t, rep.Failure)
	assert.Equal(t, domain.FailureNoContent, rep.Failure.Kind)
}

func TestAnalyzeProduct_Fallback(t *testing.T) {
	s := New(nil, Config{}, zap.NewNop())

	a, err := s.AnalyzeProduct(context.Background(), validation.Product{
		Title: "Kulaklık",
		Price: 149.9,
	})
	require.NoError(t, err)

	assert.Equal(t, 50, a.Completeness)
	assert.Equal(t, []string{"description", "brand"}, a.Missing)
	assert.Equal(t, []string{checkTitleShort, checkPriceOK, checkMetaMissing}, a.Checks)
	assert.Equal(t, validation.ReadinessFair, a.Readiness)
	assert.Equal(t, interpretation.Fallback, a.Provenance)
	assert.Contains(t, a.Text, "COMPLETENESS SCORE: 50%")
	assert.Contains(t, a.Text, "Missing: description, brand")
	assert.Contains(t, a.Text, "Fair - Some important fields are missing")
}

func TestAnalyzeProduct_Complete(t *testing.T) {
	s := New(nil, Config{}, zap.NewNop())

	a, err := s.AnalyzeProduct(context.Background(), validation.Product{
		Title:       "Sony WH-1000XM5 Kablosuz Kulaklık",
		Description: strings.Repeat("Gürültü engelleme ", 5),
		Brand:       "Sony",
		MetaSEO:     strings.Repeat("m", 140),
		Price:       349,
	})
	require.NoError(t, err)

	assert.Equal(t, 100, a.Completeness)
	assert.Empty(t, a.Missing)
	assert.Equal(t, []string{checkTitleOK, checkDescOK, checkPriceOK, checkMetaOK}, a.Checks)
	assert.Equal(t, validation.ReadinessGood, a.Readiness)
}

func TestAnalyzeProduct_AI(t *testing.T) {
	gen := &mockGenerator{text: "Completeness 8/10."}
	s := New(gen, Config{Configured: true}, zap.NewNop())

	a, err := s.AnalyzeProduct(context.Background(), validation.Product{Title: "Apple iPhone 15", Brand: "Apple"})
	require.NoError(t, err)

	assert.Equal(t, interpretation.AISuccess, a.Provenance)
	assert.Equal(t, "Completeness 8/10.", a.Text)
	assert.Equal(t, 50, a.Completeness)
	assert.Contains(t, gen.requests[0].Prompt, "Description: Not provided")
	assert.Contains(t, gen.requests[0].Prompt, "Brand: Apple")
}

func TestAnalyzeProduct_AIFailure(t *testing.T) {
	gen := &mockGenerator{err: errors.New("connection refused")}
	s := New(gen, Config{Configured: true}, zap.NewNop())

	a, err := s.AnalyzeProduct(context.Background(), validation.Product{Title: "Apple iPhone 15"})
	require.NoError(t, err)

	assert.Equal(t, interpretation.Fallback, a.Provenance)
	require.NotNil(t, a.Failure)
	assert.Equal(t, domain.FailureUnknown, a.Failure.Kind)
	assert.Contains(t, a.Text, "BASIC PRODUCT ANALYSIS")
}

func TestAnalyzeProduct_Empty(t *testing.T) {
	s := New(nil, Config{}, zap.NewNop())
	_, err := s.AnalyzeProduct(context.Background(), validation.Product{})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}
