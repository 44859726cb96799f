// Package catalog provides the read-only product catalog backends searched by
// the pipeline: an in-process store, Redis hashes and a SQL database.
package catalog

import (
	"context"
	"slices"
	"sync"

	domcat "github.com/kailas-cloud/catalogai/internal/domain/catalog"
)

// Memory keeps the catalog in process, ordered by id.
type Memory struct {
	mu    sync.RWMutex
	items []domcat.Item
}

// NewMemory creates an in-process catalog holding a copy of items.
func NewMemory(items ...domcat.Item) *Memory {
	m := &Memory{}
	m.items = upsertItems(nil, items)
	return m
}

// Find evaluates q over the items in id order.
func (m *Memory) Find(_ context.Context, q domcat.Query) ([]domcat.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return q.Filter(m.items), nil
}

// Upsert inserts or replaces items by id.
func (m *Memory) Upsert(_ context.Context, items []domcat.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = upsertItems(m.items, items)
	return nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// Len returns the number of stored items, inactive included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func upsertItems(dst, items []domcat.Item) []domcat.Item {
	out := slices.Clone(dst)
	for _, it := range items {
		i, found := slices.BinarySearchFunc(out, it.ID, func(e domcat.Item, id int64) int {
			switch {
			case e.ID < id:
				return -1
			case e.ID > id:
				return 1
			default:
				return 0
			}
		})
		if found {
			out[i] = it
			continue
		}
		out = slices.Insert(out, i, it)
	}
	return out
}
