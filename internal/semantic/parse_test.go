package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{
			name: "plain json",
			raw:  `{"category":"phone","price_range":"budget"}`,
			want: map[string]any{"category": "phone", "price_range": "budget"},
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"brand\":\"Apple\"}\n```",
			want: map[string]any{"brand": "Apple"},
		},
		{
			name: "fence without language",
			raw:  "```\n{\"color\":\"red\"}\n```",
			want: map[string]any{"color": "red"},
		},
		{
			name: "prose around object",
			raw:  `Sure! {"brand":"Apple"} Hope that helps`,
			want: map[string]any{"brand": "Apple"},
		},
		{
			name: "two objects, first balanced wins",
			raw:  `first {"gender":"female"} then {"gender":"male"}`,
			want: map[string]any{"gender": "female"},
		},
		{
			name: "braces inside strings",
			raw:  `note: {"keywords":["a}b"],"style":"sport"} trailing }`,
			want: map[string]any{"keywords": []any{"a}b"}, "style": "sport"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFilters(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFilters_Rejects(t *testing.T) {
	for _, raw := range []string{
		"no json here",
		"",
		"   ",
		"{}",
		`["phone"]`,
		`{"category": "phone"`,
	} {
		t.Run(raw, func(t *testing.T) {
			got, ok := ParseFilters(raw)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}
