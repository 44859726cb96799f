// Package catalog describes the read-only product catalog the search runs against.
package catalog

// Status is the publication state of a product.
type Status int

// Status values, as stored by the catalog.
const (
	Inactive Status = 0
	Active   Status = 1
)

// Item is a product as seen by search. Items are read-only to this service.
type Item struct {
	ID          int64   `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Brand       string  `json:"brand" yaml:"brand"`
	Description string  `json:"description" yaml:"description"`
	Features    string  `json:"features" yaml:"features"`
	Category    string  `json:"category" yaml:"category"`
	Price       float64 `json:"price" yaml:"price"`
	Stock       int     `json:"stock" yaml:"stock"`
	Status      Status  `json:"status" yaml:"status"`
}

// IsActive reports whether the item may appear in search results.
func (it Item) IsActive() bool { return it.Status == Active }

// Field is a searchable text attribute of an Item.
type Field string

// Searchable fields.
const (
	FieldTitle       Field = "title"
	FieldBrand       Field = "brand"
	FieldDescription Field = "description"
	FieldFeatures    Field = "features"
	FieldCategory    Field = "category"
)

// TextFields are the fields the plain query search looks at.
var TextFields = []Field{FieldTitle, FieldBrand, FieldDescription, FieldFeatures, FieldCategory}

// ContentFields are the product's own text fields, without the category name.
var ContentFields = []Field{FieldTitle, FieldBrand, FieldDescription, FieldFeatures}

// Value returns the text of field f.
func (it Item) Value(f Field) string {
	switch f {
	case FieldTitle:
		return it.Title
	case FieldBrand:
		return it.Brand
	case FieldDescription:
		return it.Description
	case FieldFeatures:
		return it.Features
	case FieldCategory:
		return it.Category
	default:
		return ""
	}
}
