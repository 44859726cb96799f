package semantic

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/catalogai/internal/domain/search/filter"
	"github.com/kailas-cloud/catalogai/internal/lexicon"
)

// Normalize converts a decoded model object into a filter set. Null and empty
// values count as absent. dropped counts values that were present but could
// not be used (unknown enum values, wrong types). Unknown keys are ignored.
func Normalize(obj map[string]any) (s filter.Set, dropped int) {
	s.Keywords = []string{}

	for key, raw := range obj {
		if raw == nil {
			continue
		}
		switch strings.ToLower(key) {
		case filter.KeyCategory:
			dropped += setText(&s.Category, raw, lexicon.Category, lexicon.Lower)
		case filter.KeyBrand:
			dropped += setText(&s.Brand, raw, lexicon.Brand, strings.TrimSpace)
		case filter.KeyColor:
			dropped += setText(&s.Color, raw, lexicon.Color, lexicon.Lower)
		case filter.KeyMaterial:
			dropped += setText(&s.Material, raw, lexicon.Material, lexicon.Lower)
		case filter.KeyStyle:
			dropped += setText(&s.Style, raw, lexicon.Style, lexicon.Lower)
		case filter.KeyGender:
			v, ok := enumValue(raw, lexicon.Gender)
			if !ok {
				dropped += presentValue(raw)
				continue
			}
			s.Gender = filter.Gender(v)
		case filter.KeyPriceTier, filter.KeyPriceRange:
			if _, preferred := obj[filter.KeyPriceTier]; preferred && key != filter.KeyPriceTier {
				continue
			}
			v, ok := enumValue(raw, lexicon.PriceTier)
			if !ok {
				dropped += presentValue(raw)
				continue
			}
			s.PriceTier = filter.PriceTier(v)
		case filter.KeySize:
			v, ok := scalarText(raw)
			if !ok {
				dropped++
				continue
			}
			s.Size = strings.ToUpper(v)
		case filter.KeyKeywords:
			kws, bad := keywordList(raw)
			dropped += bad
			s.Keywords = filter.AddKeywords(s.Keywords, kws...)
		}
	}
	return s, dropped
}

// setText stores a trimmed string value, canonicalized through the table when known.
func setText(dst *string, raw any, kind lexicon.Kind, clean func(string) string) int {
	v, ok := raw.(string)
	if !ok {
		return 1
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if c, known := lexicon.Canonical(kind, v); known {
		*dst = c
		return 0
	}
	*dst = clean(v)
	return 0
}

func enumValue(raw any, kind lexicon.Kind) (string, bool) {
	v, ok := raw.(string)
	if !ok {
		return "", false
	}
	return lexicon.Canonical(kind, v)
}

// presentValue returns 1 when raw carries a value, 0 for empty strings.
func presentValue(raw any) int {
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return 0
	}
	return 1
}

func scalarText(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// keywordList accepts an array of strings or a comma separated string.
func keywordList(raw any) (kws []string, bad int) {
	var parts []string
	switch v := raw.(type) {
	case string:
		parts = strings.Split(v, ",")
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				bad++
				continue
			}
			parts = append(parts, s)
		}
	default:
		return nil, 1
	}
	for _, p := range parts {
		p = lexicon.Lower(strings.TrimSpace(p))
		if p != "" {
			kws = append(kws, p)
		}
	}
	return kws, bad
}
