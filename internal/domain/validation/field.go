// Package validation holds product field checks and product analysis results.
package validation

import (
	"strings"
)

// Field is a product attribute that can be validated.
type Field string

// Validatable fields.
const (
	Title       Field = "title"
	Description Field = "description"
	Meta        Field = "meta"
	Features    Field = "features"
	Price       Field = "price"
	Brand       Field = "brand"
)

var fieldAliases = map[string]Field{
	"title":            Title,
	"name":             Title,
	"description":      Description,
	"meta":             Meta,
	"meta_seo":         Meta,
	"meta_description": Meta,
	"seo":              Meta,
	"features":         Features,
	"price":            Price,
	"brand":            Brand,
}

// ParseField resolves a field name or alias. Unknown names are returned
// as-is with known=false; they are still accepted by the validator.
func ParseField(name string) (f Field, known bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if f, ok := fieldAliases[key]; ok {
		return f, true
	}
	return Field(key), false
}

// Rule is the deterministic bound check for a text field, in runes.
type Rule struct {
	Min      int
	Max      int
	Guidance string
}

// Rules are the length bounds per text field. Price is checked numerically.
var Rules = map[Field]Rule{
	Title:       {Min: 3, Max: 255, Guidance: "Title should be descriptive and include key product features."},
	Description: {Min: 10, Max: 2000, Guidance: "Description should be detailed, informative, and highlight benefits."},
	Meta:        {Min: 50, Max: 160, Guidance: "Meta description should be 150-160 characters for optimal SEO."},
	Features:    {Min: 5, Max: 1000, Guidance: "Features should be listed clearly, one per line or comma-separated."},
	Brand:       {Min: 2, Max: 100, Guidance: "Brand name should be accurate and properly capitalized."},
}

// MinPrice is the smallest acceptable price.
const MinPrice = 0.01

// PriceGuidance accompanies price checks.
const PriceGuidance = "Price should be competitive and reflect product value."

// GenericGuidance is returned for fields without a rule.
const GenericGuidance = "Field appears to be valid."
