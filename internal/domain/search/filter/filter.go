package filter

import "slices"

// Known filter keys, as they appear in model output and API payloads.
const (
	KeyCategory  = "category"
	KeyBrand     = "brand"
	KeyColor     = "color"
	KeyMaterial  = "material"
	KeyGender    = "gender"
	KeyPriceTier = "price_tier"
	KeyStyle     = "style"
	KeySize      = "size"
	KeyKeywords  = "keywords"

	// KeyPriceRange is the legacy name of KeyPriceTier still produced by some prompts.
	KeyPriceRange = "price_range"
)

// Gender is the target audience of a product.
type Gender string

// Gender values.
const (
	Female Gender = "female"
	Male   Gender = "male"
	Unisex Gender = "unisex"
)

// IsValid checks if the gender is one of the supported values.
func (g Gender) IsValid() bool {
	return g == Female || g == Male || g == Unisex
}

// PriceTier is a coarse price bucket.
type PriceTier string

// Price tiers.
const (
	Budget  PriceTier = "budget"
	Medium  PriceTier = "medium"
	Premium PriceTier = "premium"
)

// IsValid checks if the tier is one of the supported values.
func (p PriceTier) IsValid() bool {
	return p == Budget || p == Medium || p == Premium
}

// Set is the structured interpretation of a query. An empty field means the
// attribute is unconstrained. Keywords is never nil once a Set leaves the
// normalization step.
type Set struct {
	Category  string    `json:"category,omitempty"`
	Brand     string    `json:"brand,omitempty"`
	Color     string    `json:"color,omitempty"`
	Material  string    `json:"material,omitempty"`
	Gender    Gender    `json:"gender,omitempty"`
	PriceTier PriceTier `json:"price_tier,omitempty"`
	Style     string    `json:"style,omitempty"`
	Size      string    `json:"size,omitempty"`
	Keywords  []string  `json:"keywords"`
}

// HasStructured reports whether any key other than keywords is set.
func (s Set) HasStructured() bool {
	return s.Category != "" || s.Brand != "" || s.Color != "" || s.Material != "" ||
		s.Gender != "" || s.PriceTier != "" || s.Style != "" || s.Size != ""
}

// IsEmpty reports whether the set constrains nothing at all.
func (s Set) IsEmpty() bool {
	return !s.HasStructured() && len(s.Keywords) == 0
}

// Fill returns a copy of s where every empty key takes the value from other.
// Keys already present in s are kept. Keywords are unioned, s first.
func (s Set) Fill(other Set) Set {
	out := s.Clone()
	fillString(&out.Category, other.Category)
	fillString(&out.Brand, other.Brand)
	fillString(&out.Color, other.Color)
	fillString(&out.Material, other.Material)
	fillString(&out.Style, other.Style)
	fillString(&out.Size, other.Size)
	if out.Gender == "" {
		out.Gender = other.Gender
	}
	if out.PriceTier == "" {
		out.PriceTier = other.PriceTier
	}
	out.Keywords = AddKeywords(out.Keywords, other.Keywords...)
	return out
}

// Clone returns a deep copy.
func (s Set) Clone() Set {
	out := s
	out.Keywords = slices.Clone(s.Keywords)
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	return out
}

// AddKeywords appends keywords not yet present, preserving order.
func AddKeywords(dst []string, kws ...string) []string {
	if dst == nil {
		dst = []string{}
	}
	for _, k := range kws {
		if k == "" || slices.Contains(dst, k) {
			continue
		}
		dst = append(dst, k)
	}
	return dst
}

func fillString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
