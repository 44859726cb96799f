package validation

import (
	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
)

// Report is the verdict for a single field. IsValid is always decided by the
// deterministic rules; Analysis carries the model's critique when available.
type Report struct {
	Field      Field                     `json:"field"`
	Content    string                    `json:"content"`
	IsValid    bool                      `json:"is_valid"`
	Message    string                    `json:"message"`
	Issues     []string                  `json:"issues"`
	Analysis   string                    `json:"analysis,omitempty"`
	Provenance interpretation.Provenance `json:"provenance"`
	Failure    *interpretation.Failure   `json:"error,omitempty"`
}

// Product is the input of a whole-product analysis.
type Product struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Features    string  `json:"features"`
	Category    string  `json:"category"`
	MetaSEO     string  `json:"meta_seo"`
	Price       float64 `json:"price"`
}

// IsEmpty reports whether there is nothing to analyze.
func (p Product) IsEmpty() bool {
	return p.Title == "" && p.Description == "" && p.Brand == "" &&
		p.Features == "" && p.MetaSEO == "" && p.Price == 0
}

// Readiness is the coarse market readiness verdict.
type Readiness string

// Readiness tiers by completeness score.
const (
	ReadinessGood Readiness = "good"
	ReadinessFair Readiness = "fair"
	ReadinessPoor Readiness = "poor"
)

// ReadinessFor maps a completeness percentage to a tier: >=75 good, >=50 fair.
func ReadinessFor(completeness int) Readiness {
	switch {
	case completeness >= 75:
		return ReadinessGood
	case completeness >= 50:
		return ReadinessFair
	default:
		return ReadinessPoor
	}
}

// Analysis is the outcome of a whole-product review.
type Analysis struct {
	Completeness int                       `json:"completeness"`
	Missing      []string                  `json:"missing_fields"`
	Checks       []string                  `json:"checks"`
	Readiness    Readiness                 `json:"market_readiness"`
	Text         string                    `json:"analysis"`
	Provenance   interpretation.Provenance `json:"provenance"`
	Failure      *interpretation.Failure   `json:"error,omitempty"`
}
