package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Kırmızı  ÇANTA", "kirmizi canta"},
		{"İSTANBUL", "istanbul"},
		{"IPHONE", "iphone"},
		{"güneş gözlüğü", "gunes gozlugu"},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestLower_KeepsTurkishLetters(t *testing.T) {
	assert.Equal(t, "kırmızı elbise", Lower("Kırmızı Elbise"))
	assert.Equal(t, "iphone", Lower("IPHONE"))
	assert.Equal(t, "istanbul", Lower("İstanbul"))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Kırmızı Elbise", "kirmizi"))
	assert.True(t, Contains("Sony WH-1000XM5 Headphones", "headphones"))
	assert.False(t, Contains("anything", ""))
	assert.False(t, Contains("Apple", "samsung"))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		text  string
		want  string
		found bool
	}{
		{"turkish category", Category, "ucuz telefon", "phone", true},
		{"plural suffix", Gender, "kadınlar için", "female", true},
		{"female before male", Gender, "men and women", "female", true},
		{"short term needs whole word", Category, "gaming laptop", "laptop", true},
		{"top is not inside laptop", Category, "laptop", "laptop", true},
		{"women does not yield men", Gender, "women shoes", "female", true},
		{"marka is not man", Gender, "Apple marka", "", false},
		{"folded input", Color, "KIRMIZI", "red", true},
		{"ascii typed turkish", Color, "kirmizi elbise", "red", true},
		{"multi word synonym", Category, "sırt çantası", "bag", true},
		{"brand display name", Brand, "h&m tişört", "H&M", true},
		{"brand variation", Brand, "galaxy s24", "Samsung", true},
		{"budget before premium", PriceTier, "cheap luxury", "budget", true},
		{"under as a word", PriceTier, "gaming laptop under 1000", "budget", true},
		{"underwear is not under", PriceTier, "cotton underwear", "", false},
		{"under armour is not under", PriceTier, "Under Armour tişört", "", false},
		{"under armour brand", Brand, "Under Armour tişört", "Under Armour", true},
		{"no match", Color, "laptop", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(tt.kind, tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSynonyms(t *testing.T) {
	syns := Synonyms(Category, "headphones")
	assert.Equal(t, "headphones", syns[0])
	assert.Contains(t, syns, "kulaklık")
	assert.NotContains(t, syns[1:], "headphones")

	assert.Equal(t, []string{"gizmo"}, Synonyms(Category, "gizmo"))
}

func TestCanonical(t *testing.T) {
	got, ok := Canonical(Gender, "Kadın")
	assert.True(t, ok)
	assert.Equal(t, "female", got)

	got, ok = Canonical(PriceTier, "premium")
	assert.True(t, ok)
	assert.Equal(t, "premium", got)

	_, ok = Canonical(PriceTier, "cheap-ish")
	assert.False(t, ok)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"kadınlar", "kırmızı", "elbise"}, Tokenize("kadınlar için kırmızı elbise"))
	assert.Equal(t, []string{"gaming", "laptop", "under", "1000"}, Tokenize("gaming laptop, under 1000"))
	assert.Equal(t, []string{"h&m", "shirt"}, Tokenize("H&M t-shirt shirt"))
	assert.Empty(t, Tokenize("a an of"))
}

func TestDetectSize(t *testing.T) {
	tests := []struct {
		text  string
		want  string
		found bool
	}{
		{"nike ayakkabı 42 numara", "42", true},
		{"beden M tişört", "M", true},
		{"size 38,5 boots", "38.5", true},
		{"xl hoodie", "XL", true},
		{"iphone 15", "", false},
		{"m tişört", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := DetectSize(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
