// Package aicache caches raw model responses in a key-value store.
package aicache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogai/internal/db"
	"github.com/kailas-cloud/catalogai/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "ai_cache:"

// store is the consumer interface for the response cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// entry is the cached payload. Token counts are not cached: a hit costs nothing.
type entry struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// CachedGenerator serves repeated prompts from the store. Only successful
// responses are cached; failures always reach the provider again.
type CachedGenerator struct {
	inner      domain.Generator
	store      store
	model      string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. model is part of the cache key so that
// switching models never serves stale answers.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.Generator,
	s store,
	model string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedGenerator {
	return &CachedGenerator{
		inner:      inner,
		store:      s,
		model:      model,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Generate returns a cached response or calls the inner generator.
// Cache hit: Cached=true and zero token counts.
func (c *CachedGenerator) Generate(
	ctx context.Context, req domain.GenerationRequest,
) (domain.GenerationResult, error) {
	key := c.cacheKey(req)

	if e, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return domain.GenerationResult{Text: e.Text, Model: e.Model, Cached: true}, nil
	}
	c.incCache("miss")

	result, err := c.inner.Generate(ctx, req)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("generate: %w", err)
	}

	c.putToCache(ctx, key, entry{Text: result.Text, Model: result.Model})
	return result, nil
}

// HealthCheck delegates to the inner generator.
func (c *CachedGenerator) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

func (c *CachedGenerator) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedGenerator) cacheKey(req domain.GenerationRequest) string {
	h := sha256.New()
	for _, part := range []string{
		c.model,
		req.System,
		req.Prompt,
		strconv.FormatFloat(float64(req.Temperature), 'f', -1, 32),
		strconv.Itoa(req.MaxTokens),
		strconv.FormatBool(req.JSON),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedGenerator) getFromCache(ctx context.Context, key string) (entry, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached response", zap.String("key", key), zap.Error(err))
		}
		return entry{}, false
	}
	if len(data) == 0 {
		return entry{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil || e.Text == "" {
		c.logger.Warn("Failed to parse cached response", zap.String("key", key), zap.Error(err))
		return entry{}, false
	}
	return e, true
}

func (c *CachedGenerator) putToCache(ctx context.Context, key string, e entry) {
	if e.Text == "" {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		c.logger.Warn("Failed to encode response for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
	}
}
