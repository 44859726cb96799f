// Package validate reviews product fields and whole products. The verdict is
// always rule based; the model only adds a written critique.
package validate

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogai/internal/domain"
	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
	"github.com/kailas-cloud/catalogai/internal/domain/validation"
	"github.com/kailas-cloud/catalogai/internal/metrics"
)

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 20 * time.Second

// Critique generation settings.
const (
	DefaultTemperature = 0.4
	DefaultMaxTokens   = 600
)

// Config is the AI configuration of the validator.
type Config struct {
	Configured  bool
	Timeout     time.Duration
	Temperature float32
	MaxTokens   int
}

// Service validates fields and analyzes products. Safe for concurrent use.
type Service struct {
	gen    Generator
	cfg    Config
	logger *zap.Logger
}

// New creates a validator. gen may be nil when AI is not configured.
func New(gen Generator, cfg Config, logger *zap.Logger) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if gen == nil {
		cfg.Configured = false
	}
	return &Service{gen: gen, cfg: cfg, logger: logger}
}

// ValidateField checks content against the rules of the named field and asks
// the model for a critique. category is optional context for the prompt.
func (s *Service) ValidateField(ctx context.Context, name, content, category string) (validation.Report, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(content) == "" {
		return validation.Report{}, domain.ErrEmptyContent
	}
	field, known := validation.ParseField(name)

	issues, guidance := checkField(field, content)
	rep := validation.Report{
		Field:   field,
		Content: content,
		IsValid: len(issues) == 0,
		Message: ruleMessage(issues, guidance),
		Issues:  issues,
	}

	text, err := s.critique(ctx, buildFieldPrompt(field, content, strings.TrimSpace(category)))
	if err != nil {
		rep.Provenance = interpretation.Fallback
		rep.Failure = s.failure("Field validation fell back to rules", err, zap.String("field", string(field)))
	} else {
		rep.Provenance = interpretation.AISuccess
		rep.Analysis = text
	}

	label := string(field)
	if !known {
		label = "other"
	}
	metrics.ValidationsTotal.WithLabelValues(label, string(rep.Provenance), strconv.FormatBool(rep.IsValid)).Inc()
	return rep, nil
}

// AnalyzeProduct scores a product's completeness and returns a critique,
// written by the model when available and rendered from the checks otherwise.
func (s *Service) AnalyzeProduct(ctx context.Context, p validation.Product) (validation.Analysis, error) {
	if p.IsEmpty() {
		return validation.Analysis{}, domain.ErrInvalidProduct
	}

	a := assess(p)
	text, err := s.critique(ctx, buildProductPrompt(p))
	if err != nil {
		a.Provenance = interpretation.Fallback
		a.Failure = s.failure("Product analysis fell back to rules", err)
		a.Text = renderFallback(a)
		return a, nil
	}
	a.Provenance = interpretation.AISuccess
	a.Text = text
	return a, nil
}

func (s *Service) critique(ctx context.Context, prompt string) (string, error) {
	if !s.cfg.Configured {
		return "", domain.NewGenerationError(
			domain.FailureNotConfigured, "AI service not configured", domain.ErrAINotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	res, err := s.gen.Generate(ctx, domain.GenerationRequest{
		System:      reviewerSystemPrompt,
		Prompt:      prompt,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(res.Text)
	if text == "" {
		return "", domain.NewGenerationError(domain.FailureNoContent, "No content in API response", nil)
	}
	return text, nil
}

func (s *Service) failure(msg string, err error, fields ...zap.Field) *interpretation.Failure {
	kind := domain.FailureKindOf(err)
	if kind != domain.FailureNotConfigured {
		s.logger.Warn(msg, append(fields, zap.String("kind", string(kind)), zap.Error(err))...)
	}
	return &interpretation.Failure{Kind: kind, Message: err.Error()}
}
