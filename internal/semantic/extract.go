package semantic

import (
	"github.com/kailas-cloud/catalogai/internal/domain/search/filter"
	"github.com/kailas-cloud/catalogai/internal/lexicon"
)

// Extract derives filters from the query with the synonym tables alone.
// It performs no I/O and returns the same output for the same input.
func Extract(query string) filter.Set {
	s := filter.Set{Keywords: lexicon.Tokenize(query)}

	if v, ok := lexicon.Match(lexicon.Category, query); ok {
		s.Category = v
	}
	if v, ok := lexicon.Match(lexicon.Color, query); ok {
		s.Color = v
	}
	if v, ok := lexicon.Match(lexicon.Gender, query); ok {
		s.Gender = filter.Gender(v)
	}
	if v, ok := lexicon.Match(lexicon.Brand, query); ok {
		s.Brand = v
	}
	if v, ok := lexicon.Match(lexicon.PriceTier, query); ok {
		s.PriceTier = filter.PriceTier(v)
	}
	if v, ok := lexicon.Match(lexicon.Style, query); ok {
		s.Style = v
	}
	if v, ok := lexicon.Match(lexicon.Material, query); ok {
		s.Material = v
	}
	if v, ok := lexicon.DetectSize(query); ok {
		s.Size = v
	}
	return s
}

// Enhance fills keys the model left empty with what the synonym tables find
// in the query and adds the query tokens to the keywords. Values already in f
// are never replaced, so Enhance(q, Enhance(q, f)) equals Enhance(q, f).
func Enhance(query string, f filter.Set) filter.Set {
	return f.Fill(Extract(query))
}
