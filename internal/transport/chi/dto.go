package chi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/catalogai/internal/domain/catalog"
	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
	"github.com/kailas-cloud/catalogai/internal/domain/search/filter"
	"github.com/kailas-cloud/catalogai/internal/domain/search/result"
	domusage "github.com/kailas-cloud/catalogai/internal/domain/usage"
	"github.com/kailas-cloud/catalogai/internal/domain/validation"
	healthuc "github.com/kailas-cloud/catalogai/internal/usecase/health"
)

// InterpretRequest is the body of POST /api/v1/interpret.
type InterpretRequest struct {
	Query string `json:"query" validate:"required,max=500"`
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query" validate:"required,max=500"`
	Limit int    `json:"limit" validate:"gte=0"`
}

// ValidateRequest is the body of POST /api/v1/validate.
type ValidateRequest struct {
	Field    string `json:"field" validate:"required,max=64"`
	Content  string `json:"content" validate:"required,max=10000"`
	Category string `json:"category" validate:"max=255"`
}

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	Title       string  `json:"title" validate:"max=1000"`
	Description string  `json:"description" validate:"max=20000"`
	Brand       string  `json:"brand" validate:"max=255"`
	Features    string  `json:"features" validate:"max=10000"`
	Category    string  `json:"category" validate:"max=255"`
	MetaSEO     string  `json:"meta_seo" validate:"max=1000"`
	Price       float64 `json:"price"`
}

func (r AnalyzeRequest) toDomain() validation.Product {
	return validation.Product{
		Title:       r.Title,
		Description: r.Description,
		Brand:       r.Brand,
		Features:    r.Features,
		Category:    r.Category,
		MetaSEO:     r.MetaSEO,
		Price:       r.Price,
	}
}

// FailureDTO describes why the model tier was not used.
type FailureDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func failureToDTO(f *interpretation.Failure) *FailureDTO {
	if f == nil {
		return nil
	}
	return &FailureDTO{Kind: string(f.Kind), Message: f.Message}
}

// InterpretResponse is the body of a successful interpretation.
type InterpretResponse struct {
	Success          bool        `json:"success"`
	ID               string      `json:"interpretation_id"`
	Query            string      `json:"query"`
	Provenance       string      `json:"provenance"`
	AIEnhanced       bool        `json:"ai_enhanced"`
	Filters          filter.Set  `json:"filters"`
	HasFilters       bool        `json:"has_filters"`
	Model            string      `json:"model,omitempty"`
	Error            *FailureDTO `json:"error,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	FallbackKeywords []string    `json:"fallback_keywords,omitempty"`
}

func interpretationToDTO(r interpretation.Result) InterpretResponse {
	f := r.Filters()
	resp := InterpretResponse{
		Success:    true,
		ID:         r.ID(),
		Query:      r.Query(),
		Provenance: string(r.Provenance()),
		AIEnhanced: r.Success(),
		Filters:    f,
		HasFilters: !f.IsEmpty(),
		Model:      r.Model(),
		Error:      failureToDTO(r.Failure()),
		CreatedAt:  r.CreatedAt(),
	}
	if !r.Success() {
		resp.FallbackKeywords = f.Keywords
	}
	return resp
}

// ProductDTO is a catalog item in search responses.
type ProductDTO struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Features    string  `json:"features,omitempty"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func productToDTO(it catalog.Item) ProductDTO {
	return ProductDTO{
		ID:          it.ID,
		Title:       it.Title,
		Brand:       it.Brand,
		Description: it.Description,
		Features:    it.Features,
		Category:    it.Category,
		Price:       it.Price,
		Stock:       it.Stock,
	}
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Success       bool         `json:"success"`
	Query         string       `json:"query"`
	Provenance    string       `json:"provenance"`
	AIEnhanced    bool         `json:"ai_enhanced"`
	Filters       filter.Set   `json:"filters"`
	SearchMethod  string       `json:"search_method"`
	BasicCount    int          `json:"basic_count"`
	EnhancedCount int          `json:"enhanced_count"`
	Count         int          `json:"count"`
	Products      []ProductDTO `json:"products"`
	Error         *FailureDTO  `json:"error,omitempty"`
}

func searchToDTO(interp interpretation.Result, res *result.Result) SearchResponse {
	products := make([]ProductDTO, 0, res.Count())
	for _, it := range res.Items() {
		products = append(products, productToDTO(it))
	}
	return SearchResponse{
		Success:       true,
		Query:         interp.Query(),
		Provenance:    string(interp.Provenance()),
		AIEnhanced:    interp.Success(),
		Filters:       interp.Filters(),
		SearchMethod:  string(res.Method()),
		BasicCount:    res.BasicCount(),
		EnhancedCount: res.EnhancedCount(),
		Count:         res.Count(),
		Products:      products,
		Error:         failureToDTO(interp.Failure()),
	}
}

// SuggestResponse is the body of GET /api/v1/suggest.
type SuggestResponse struct {
	Success     bool     `json:"success"`
	Suggestions []string `json:"suggestions"`
}

// ValidateResponse is the body of a field validation.
type ValidateResponse struct {
	Success bool `json:"success"`
	validation.Report
}

// AnalyzeResponse is the body of a product analysis.
type AnalyzeResponse struct {
	Success bool `json:"success"`
	validation.Analysis
}

// AIStatusResponse is the body of GET /api/v1/ai/status.
type AIStatusResponse struct {
	Success           bool        `json:"success"`
	Configured        bool        `json:"configured"`
	Online            bool        `json:"online"`
	Status            string      `json:"status"`
	Provider          string      `json:"provider,omitempty"`
	Model             string      `json:"model,omitempty"`
	FallbackAvailable bool        `json:"fallback_available"`
	Provenance        string      `json:"provenance"`
	TestQuery         string      `json:"test_query"`
	Error             *FailureDTO `json:"error,omitempty"`
}

func aiStatusToDTO(st healthuc.AIStatus) AIStatusResponse {
	status := "offline"
	switch {
	case !st.Configured:
		status = "not_configured"
	case st.Online:
		status = "online"
	}
	return AIStatusResponse{
		Success:           true,
		Configured:        st.Configured,
		Online:            st.Online,
		Status:            status,
		Provider:          st.Provider,
		Model:             st.Model,
		FallbackAvailable: st.FallbackAvailable,
		Provenance:        string(st.Provenance),
		TestQuery:         healthuc.ProbeQuery,
		Error:             failureToDTO(st.Failure),
	}
}

// UsageResponse is the body of GET /api/v1/usage.
type UsageResponse struct {
	Success       bool         `json:"success"`
	Period        string       `json:"period"`
	Provider      string       `json:"provider,omitempty"`
	PeriodStartAt *time.Time   `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time   `json:"period_end_at,omitempty"`
	Usage         UsageMetrics `json:"usage"`
	Budget        BudgetStatus `json:"budget"`
}

// UsageMetrics are the consumed requests and tokens.
type UsageMetrics struct {
	Requests int `json:"requests"`
	Tokens   int `json:"tokens"`
}

// BudgetStatus is the token budget state. TokensRemaining is -1 when unlimited.
type BudgetStatus struct {
	TokensLimit     int        `json:"tokens_limit"`
	TokensRemaining int        `json:"tokens_remaining"`
	IsExhausted     bool       `json:"is_exhausted"`
	ResetsAt        *time.Time `json:"resets_at,omitempty"`
}

func usageToDTO(report domusage.Report) UsageResponse {
	resp := UsageResponse{
		Success:  true,
		Period:   string(report.Period()),
		Provider: report.Provider(),
		Usage: UsageMetrics{
			Requests: report.Metrics().Requests(),
			Tokens:   report.Metrics().Tokens(),
		},
		Budget: BudgetStatus{
			TokensLimit:     report.Budget().TokensLimit(),
			TokensRemaining: report.Budget().TokensRemaining(),
			IsExhausted:     report.Budget().IsExhausted(),
		},
	}
	if report.Budget().IsUnlimited() {
		resp.Budget.TokensRemaining = -1
	}

	if report.PeriodStart() > 0 {
		start := time.UnixMilli(report.PeriodStart()).UTC()
		end := time.UnixMilli(report.PeriodEnd()).UTC()
		resp.PeriodStartAt = &start
		resp.PeriodEndAt = &end
	}

	if report.Budget().ResetsAt() > 0 {
		resetsAt := time.UnixMilli(report.Budget().ResetsAt()).UTC()
		resp.Budget.ResetsAt = &resetsAt
	}
	return resp
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Success bool              `json:"success"`
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage renders validator errors as one line, field names as in JSON.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
