package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domcat "github.com/kailas-cloud/catalogai/internal/domain/catalog"
)

// LoadSeed reads a YAML catalog file. Items without an explicit status are
// treated as active.
func LoadSeed(path string) ([]domcat.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed YAML of the form "items: [...]".
func ParseSeed(data []byte) ([]domcat.Item, error) {
	var raw struct {
		Items []yaml.Node `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	items := make([]domcat.Item, 0, len(raw.Items))
	seen := make(map[int64]struct{}, len(raw.Items))
	for i := range raw.Items {
		node := &raw.Items[i]
		it := domcat.Item{Status: domcat.Active}
		if err := node.Decode(&it); err != nil {
			return nil, fmt.Errorf("seed item %d (line %d): %w", i, node.Line, err)
		}
		if it.ID <= 0 {
			return nil, fmt.Errorf("seed item %d (line %d): id must be positive", i, node.Line)
		}
		if it.Title == "" {
			return nil, fmt.Errorf("seed item %d (line %d): title is required", it.ID, node.Line)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("seed item %d: duplicate id", it.ID)
		}
		seen[it.ID] = struct{}{}
		items = append(items, it)
	}
	return items, nil
}
