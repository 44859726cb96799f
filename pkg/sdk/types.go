package catalogai

import (
	"time"

	domcat "github.com/kailas-cloud/catalogai/internal/domain/catalog"
	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
	"github.com/kailas-cloud/catalogai/internal/domain/search/filter"
	"github.com/kailas-cloud/catalogai/internal/domain/search/result"
	"github.com/kailas-cloud/catalogai/internal/domain/validation"
)

// Provenance tells which tier produced the filters.
type Provenance string

// Provenance values.
const (
	ProvenanceAI        Provenance = "ai_success"
	ProvenanceAIPartial Provenance = "ai_partial"
	ProvenanceFallback  Provenance = "fallback"
)

// Filters is the structured reading of a query. Empty fields are unconstrained.
type Filters struct {
	Category  string
	Brand     string
	Color     string
	Material  string
	Gender    string // female, male, unisex
	PriceTier string // budget, medium, premium
	Style     string
	Size      string
	Keywords  []string
}

// Failure explains why the model was not used.
type Failure struct {
	Kind    string
	Message string
}

// Interpretation is the outcome of Interpret.
type Interpretation struct {
	ID         string
	Query      string
	Filters    Filters
	Provenance Provenance
	Model      string
	Failure    *Failure
	CreatedAt  time.Time
}

// AIEnhanced reports whether the model produced the filters.
func (i Interpretation) AIEnhanced() bool {
	return i.Provenance == ProvenanceAI || i.Provenance == ProvenanceAIPartial
}

// Product is a catalog item.
type Product struct {
	ID          int64
	Title       string
	Brand       string
	Description string
	Features    string
	Category    string
	Price       float64
	Stock       int
	// Inactive products are never returned by Search.
	Inactive bool
}

// SearchResult is the outcome of Search.
type SearchResult struct {
	Interpretation Interpretation
	// Method is "basic" or "enhanced".
	Method        string
	BasicCount    int
	EnhancedCount int
	Products      []Product
}

// FieldReport is the verdict for a single field.
type FieldReport struct {
	Field      string
	IsValid    bool
	Message    string
	Issues     []string
	Analysis   string
	Provenance Provenance
	Failure    *Failure
}

// ProductInput is what AnalyzeProduct reviews.
type ProductInput struct {
	Title       string
	Description string
	Brand       string
	Features    string
	Category    string
	MetaSEO     string
	Price       float64
}

// ProductAnalysis is the outcome of AnalyzeProduct.
type ProductAnalysis struct {
	Completeness int
	Missing      []string
	Checks       []string
	// Readiness is "good", "fair" or "poor".
	Readiness  string
	Text       string
	Provenance Provenance
	Failure    *Failure
}

func filtersFromSet(s filter.Set) Filters {
	return Filters{
		Category:  s.Category,
		Brand:     s.Brand,
		Color:     s.Color,
		Material:  s.Material,
		Gender:    string(s.Gender),
		PriceTier: string(s.PriceTier),
		Style:     s.Style,
		Size:      s.Size,
		Keywords:  s.Keywords,
	}
}

func failureFromDomain(f *interpretation.Failure) *Failure {
	if f == nil {
		return nil
	}
	return &Failure{Kind: string(f.Kind), Message: f.Message}
}

func interpretationFromDomain(r interpretation.Result) Interpretation {
	return Interpretation{
		ID:         r.ID(),
		Query:      r.Query(),
		Filters:    filtersFromSet(r.Filters()),
		Provenance: Provenance(r.Provenance()),
		Model:      r.Model(),
		Failure:    failureFromDomain(r.Failure()),
		CreatedAt:  r.CreatedAt(),
	}
}

func productToItem(p Product) domcat.Item {
	status := domcat.Active
	if p.Inactive {
		status = domcat.Inactive
	}
	return domcat.Item{
		ID:          p.ID,
		Title:       p.Title,
		Brand:       p.Brand,
		Description: p.Description,
		Features:    p.Features,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		Status:      status,
	}
}

func productFromItem(it domcat.Item) Product {
	return Product{
		ID:          it.ID,
		Title:       it.Title,
		Brand:       it.Brand,
		Description: it.Description,
		Features:    it.Features,
		Category:    it.Category,
		Price:       it.Price,
		Stock:       it.Stock,
		Inactive:    !it.IsActive(),
	}
}

func searchResultFromDomain(interp interpretation.Result, res *result.Result) SearchResult {
	products := make([]Product, 0, res.Count())
	for _, it := range res.Items() {
		products = append(products, productFromItem(it))
	}
	return SearchResult{
		Interpretation: interpretationFromDomain(interp),
		Method:         string(res.Method()),
		BasicCount:     res.BasicCount(),
		EnhancedCount:  res.EnhancedCount(),
		Products:       products,
	}
}

func fieldReportFromDomain(r validation.Report) FieldReport {
	return FieldReport{
		Field:      string(r.Field),
		IsValid:    r.IsValid,
		Message:    r.Message,
		Issues:     r.Issues,
		Analysis:   r.Analysis,
		Provenance: Provenance(r.Provenance),
		Failure:    failureFromDomain(r.Failure),
	}
}

func (p ProductInput) toDomain() validation.Product {
	return validation.Product{
		Title:       p.Title,
		Description: p.Description,
		Brand:       p.Brand,
		Features:    p.Features,
		Category:    p.Category,
		MetaSEO:     p.MetaSEO,
		Price:       p.Price,
	}
}

func analysisFromDomain(a validation.Analysis) ProductAnalysis {
	return ProductAnalysis{
		Completeness: a.Completeness,
		Missing:      a.Missing,
		Checks:       a.Checks,
		Readiness:    string(a.Readiness),
		Text:         a.Text,
		Provenance:   Provenance(a.Provenance),
		Failure:      failureFromDomain(a.Failure),
	}
}
