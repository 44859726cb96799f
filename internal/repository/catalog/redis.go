package catalog

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogai/internal/db"
	"github.com/kailas-cloud/catalogai/internal/domain"
	domcat "github.com/kailas-cloud/catalogai/internal/domain/catalog"
)

// fetchBatch bounds a single pipelined HGETALL round-trip.
const fetchBatch = 100

// hashStore is the consumer interface for the Redis catalog (ISP).
type hashStore interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Ping(ctx context.Context) error
}

// Redis stores one hash per item under catalogai:item:<id>. Queries are
// evaluated in process over the scanned hashes.
type Redis struct {
	store  hashStore
	logger *zap.Logger
}

// NewRedis creates a Redis-backed catalog.
func NewRedis(s hashStore, logger *zap.Logger) *Redis {
	return &Redis{store: s, logger: logger}
}

// Find scans every item in id order and applies q.
func (r *Redis) Find(ctx context.Context, q domcat.Query) ([]domcat.Item, error) {
	keys, err := r.store.Scan(ctx, itemKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("%w: scan items: %w", domain.ErrCatalogUnavailable, err)
	}

	ids := make([]int64, 0, len(keys))
	for _, k := range keys {
		if id, ok := itemIDFromKey(k); ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	out := make([]domcat.Item, 0, min(len(ids), q.Limit()))
	for chunk := range slices.Chunk(ids, fetchBatch) {
		batch := make([]string, len(chunk))
		for i, id := range chunk {
			batch[i] = itemKey(id)
		}
		maps, err := r.store.HGetAllMulti(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("%w: load items: %w", domain.ErrCatalogUnavailable, err)
		}
		for i, m := range maps {
			if len(m) == 0 {
				continue // deleted between SCAN and HGETALL
			}
			it, err := parseHashFields(chunk[i], m)
			if err != nil {
				r.logger.Warn("Skipping malformed catalog item", zap.Int64("id", chunk[i]), zap.Error(err))
				continue
			}
			if q.Matches(it) {
				out = append(out, it)
				if len(out) >= q.Limit() {
					return out, nil
				}
			}
		}
	}
	return out, nil
}

// Upsert writes items in one pipeline.
func (r *Redis) Upsert(ctx context.Context, items []domcat.Item) error {
	batch := make([]db.HashSetItem, len(items))
	for i, it := range items {
		batch[i] = db.HashSetItem{Key: itemKey(it.ID), Fields: buildHashFields(it)}
	}
	if err := r.store.HSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("store items: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	return nil
}
