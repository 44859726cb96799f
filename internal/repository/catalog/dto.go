package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/catalogai/internal/domain"
	domcat "github.com/kailas-cloud/catalogai/internal/domain/catalog"
)

var itemKeyPrefix = domain.KeyPrefix + "item:"

func itemKey(id int64) string {
	return itemKeyPrefix + strconv.FormatInt(id, 10)
}

func itemIDFromKey(key string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimPrefix(key, itemKeyPrefix), 10, 64)
	return id, err == nil
}

// buildHashFields flattens an item into HSET fields.
func buildHashFields(it domcat.Item) map[string]string {
	return map[string]string{
		"title":       it.Title,
		"brand":       it.Brand,
		"description": it.Description,
		"features":    it.Features,
		"category":    it.Category,
		"price":       strconv.FormatFloat(it.Price, 'f', -1, 64),
		"stock":       strconv.Itoa(it.Stock),
		"status":      strconv.Itoa(int(it.Status)),
	}
}

// parseHashFields rebuilds an item from HGETALL output.
func parseHashFields(id int64, m map[string]string) (domcat.Item, error) {
	it := domcat.Item{
		ID:          id,
		Title:       m["title"],
		Brand:       m["brand"],
		Description: m["description"],
		Features:    m["features"],
		Category:    m["category"],
	}
	var err error
	if v := m["price"]; v != "" {
		if it.Price, err = strconv.ParseFloat(v, 64); err != nil {
			return domcat.Item{}, fmt.Errorf("item %d price %q: %w", id, v, err)
		}
	}
	if v := m["stock"]; v != "" {
		if it.Stock, err = strconv.Atoi(v); err != nil {
			return domcat.Item{}, fmt.Errorf("item %d stock %q: %w", id, v, err)
		}
	}
	if v := m["status"]; v != "" {
		status, err := strconv.Atoi(v)
		if err != nil {
			return domcat.Item{}, fmt.Errorf("item %d status %q: %w", id, v, err)
		}
		it.Status = domcat.Status(status)
	}
	return it, nil
}
