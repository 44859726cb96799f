// Package generation decorates model providers with budget enforcement,
// outbound rate limiting and observability.
package generation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/catalogai/internal/domain"
	"github.com/kailas-cloud/catalogai/internal/metrics"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// InstrumentedGenerator wraps a Generator with a rate limit, a token budget,
// metrics and logging. It never retries: a rejected or failed call goes
// straight back to the caller, which falls back to the synonym tables.
type InstrumentedGenerator struct {
	inner    domain.Generator
	provider string
	model    string
	budget   BudgetChecker
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewInstrumentedGenerator wraps a generator. budget and limiter may be nil.
func NewInstrumentedGenerator(
	inner domain.Generator, provider, model string,
	budget BudgetChecker, limiter *rate.Limiter, logger *zap.Logger,
) *InstrumentedGenerator {
	return &InstrumentedGenerator{
		inner:    inner,
		provider: provider,
		model:    model,
		budget:   budget,
		limiter:  limiter,
		logger:   logger,
	}
}

// NewLimiter builds a limiter for requestsPerMinute calls with a small burst.
// Zero or negative means unlimited and yields nil.
func NewLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	burst := max(requestsPerMinute/10, 1)
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), burst)
}

// Generate checks the limiter and budget, delegates and records usage.
func (g *InstrumentedGenerator) Generate(
	ctx context.Context, req domain.GenerationRequest,
) (domain.GenerationResult, error) {
	if g.limiter != nil && !g.limiter.Allow() {
		g.fail(domain.FailureRateLimited)
		return domain.GenerationResult{}, fmt.Errorf("local limiter: %w", domain.ErrAIRateLimited)
	}

	if g.budget != nil {
		if err := g.budget.Check(ctx); err != nil {
			g.logger.Warn("Budget exceeded",
				zap.String("provider", g.provider),
				zap.String("model", g.model),
				zap.Error(err),
			)
			g.fail(domain.FailureBudget)
			return domain.GenerationResult{}, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()
	result, err := g.inner.Generate(ctx, req)
	duration := time.Since(start)

	metrics.GenerationRequestDuration.WithLabelValues(g.provider, g.model).Observe(duration.Seconds())

	if err != nil {
		kind := domain.FailureKindOf(err)
		g.fail(kind)
		g.logger.Warn("Generation request failed",
			zap.String("provider", g.provider),
			zap.String("model", g.model),
			zap.String("kind", string(kind)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.GenerationResult{}, fmt.Errorf("generate: %w", err)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.provider, g.model, "success").Inc()
	domain.UsageFromContext(ctx).AddTokens(result.TotalTokens)

	if !result.Cached && result.TotalTokens > 0 {
		metrics.GenerationTokensTotal.WithLabelValues(g.provider, g.model, "prompt").Add(float64(result.PromptTokens))
		metrics.GenerationTokensTotal.WithLabelValues(g.provider, g.model, "completion").Add(float64(result.CompletionTokens))
		if g.budget != nil {
			g.budget.Record(int64(result.TotalTokens))
			remaining := metrics.GenerationBudgetTokensRemaining
			remaining.WithLabelValues(g.provider, "daily").Set(float64(g.budget.RemainingDaily()))
			remaining.WithLabelValues(g.provider, "monthly").Set(float64(g.budget.RemainingMonthly()))
		}
	}

	g.logger.Debug("Generation request completed",
		zap.String("provider", g.provider),
		zap.String("model", g.model),
		zap.Duration("duration", duration),
		zap.Bool("cached", result.Cached),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("completion_tokens", result.CompletionTokens),
	)

	return result, nil
}

// HealthCheck delegates to the inner generator when it supports health checks.
func (g *InstrumentedGenerator) HealthCheck(ctx context.Context) error {
	if hc, ok := g.inner.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("%s health check: %w", g.provider, err)
		}
	}
	return nil
}

// Provider returns the provider name.
func (g *InstrumentedGenerator) Provider() string { return g.provider }

// Model returns the model name.
func (g *InstrumentedGenerator) Model() string { return g.model }

func (g *InstrumentedGenerator) fail(kind domain.FailureKind) {
	metrics.GenerationRequestsTotal.WithLabelValues(g.provider, g.model, "error").Inc()
	metrics.GenerationFailuresTotal.WithLabelValues(g.provider, string(kind)).Inc()
}
