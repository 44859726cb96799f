// Package interpret turns free-text product queries into filter sets, using
// the model when it is available and the deterministic extractor otherwise.
package interpret

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogai/internal/domain"
	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
	"github.com/kailas-cloud/catalogai/internal/domain/search/filter"
	"github.com/kailas-cloud/catalogai/internal/domain/search/request"
	"github.com/kailas-cloud/catalogai/internal/metrics"
	"github.com/kailas-cloud/catalogai/internal/semantic"
)

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 15 * time.Second

// Config is the AI configuration of the interpreter.
type Config struct {
	// Configured is false when no provider or a placeholder API key is set.
	Configured  bool
	Model       string
	Timeout     time.Duration
	Temperature float32
	MaxTokens   int
}

// Service interprets queries. Safe for concurrent use.
type Service struct {
	gen    Generator
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New creates an interpreter. gen may be nil when AI is not configured.
func New(gen Generator, cfg Config, logger *zap.Logger) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = domain.DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = domain.DefaultMaxTokens
	}
	if gen == nil {
		cfg.Configured = false
	}
	return &Service{
		gen:    gen,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Configured reports whether the model tier can be attempted at all.
func (s *Service) Configured() bool { return s.cfg.Configured }

// aiOutcome is the result of the model tier. err != nil means the tier failed.
type aiOutcome struct {
	filters filter.Set
	partial bool
	model   string
	err     error
}

// Interpret returns filters for query. The error is non-nil only for invalid
// input; model failures produce a fallback result with the failure attached.
func (s *Service) Interpret(ctx context.Context, query string) (interpretation.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return interpretation.Result{}, domain.ErrEmptyQuery
	}
	if utf8.RuneCountInString(query) > request.MaxQueryLength {
		return interpretation.Result{}, fmt.Errorf("%w (max %d chars)", domain.ErrQueryTooLong, request.MaxQueryLength)
	}

	out := s.tryAI(ctx, query)

	var res interpretation.Result
	if out.err == nil {
		p := interpretation.AISuccess
		if out.partial {
			p = interpretation.AIPartial
		}
		res = interpretation.New(s.newID(), query, out.filters, p, nil, out.model, s.now())
	} else {
		kind := domain.FailureKindOf(out.err)
		s.logger.Warn("Query interpretation fell back to lexicon",
			zap.String("kind", string(kind)),
			zap.Error(out.err),
		)
		failure := &interpretation.Failure{Kind: kind, Message: out.err.Error()}
		res = interpretation.New(s.newID(), query, semantic.Extract(query), interpretation.Fallback, failure, "", s.now())
	}

	metrics.InterpretationsTotal.WithLabelValues(string(res.Provenance())).Inc()
	return res, nil
}

func (s *Service) tryAI(ctx context.Context, query string) aiOutcome {
	if !s.cfg.Configured {
		return aiOutcome{err: domain.NewGenerationError(
			domain.FailureNotConfigured, "AI service not configured", domain.ErrAINotConfigured)}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	gen, err := s.gen.Generate(ctx, domain.GenerationRequest{
		System:      systemPrompt,
		Prompt:      buildPrompt(query),
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
		JSON:        true,
	})
	if err != nil {
		return aiOutcome{err: err}
	}

	obj, ok := semantic.ParseFilters(gen.Text)
	if !ok {
		return aiOutcome{err: domain.NewGenerationError(
			domain.FailureParse, "Failed to parse valid JSON from model response", nil)}
	}

	f, dropped := semantic.Normalize(obj)
	if f.IsEmpty() {
		return aiOutcome{err: domain.NewGenerationError(
			domain.FailureParse, "Model response has no usable filter keys", nil)}
	}
	if dropped > 0 {
		s.logger.Debug("Model output had unusable values", zap.Int("dropped", dropped))
	}

	model := gen.Model
	if model == "" {
		model = s.cfg.Model
	}
	return aiOutcome{
		filters: semantic.Enhance(query, f),
		partial: dropped > 0,
		model:   model,
	}
}
