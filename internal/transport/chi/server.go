// Package chi exposes the query pipeline over HTTP.
package chi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogai/internal/domain"
	domusage "github.com/kailas-cloud/catalogai/internal/domain/usage"
	healthuc "github.com/kailas-cloud/catalogai/internal/usecase/health"
	interpretuc "github.com/kailas-cloud/catalogai/internal/usecase/interpret"
	searchuc "github.com/kailas-cloud/catalogai/internal/usecase/search"
	usageuc "github.com/kailas-cloud/catalogai/internal/usecase/usage"
	validateuc "github.com/kailas-cloud/catalogai/internal/usecase/validate"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server holds the HTTP handlers.
type Server struct {
	interpret     *interpretuc.Service
	search        *searchuc.Service
	validate      *validateuc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	validator     *validator.Validate
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	interpret *interpretuc.Service,
	search *searchuc.Service,
	validate *validateuc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		interpret:     interpret,
		search:        search,
		validate:      validate,
		usage:         usage,
		health:        health,
		validator:     newValidator(),
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Interpret handles POST /api/v1/interpret.
func (s *Server) Interpret(w http.ResponseWriter, r *http.Request) {
	var req InterpretRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	res, err := s.interpret.Interpret(ctx, req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setAIHeaders(w, usage)
	writeJSON(w, http.StatusOK, interpretationToDTO(res))
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	interp, res, err := s.search.Search(ctx, req.Query, req.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setAIHeaders(w, usage)
	writeJSON(w, http.StatusOK, searchToDTO(interp, &res))
}

// Suggest handles GET /api/v1/suggest?q=...&limit=...
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, CodeValidationFailed, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	suggestions, err := s.search.Suggest(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SuggestResponse{Success: true, Suggestions: suggestions})
}

// ValidateField handles POST /api/v1/validate.
func (s *Server) ValidateField(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	rep, err := s.validate.ValidateField(ctx, req.Field, req.Content, req.Category)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setAIHeaders(w, usage)
	writeJSON(w, http.StatusOK, ValidateResponse{Success: true, Report: rep})
}

// AnalyzeProduct handles POST /api/v1/analyze.
func (s *Server) AnalyzeProduct(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	a, err := s.validate.AnalyzeProduct(ctx, req.toDomain())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setAIHeaders(w, usage)
	writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, Analysis: a})
}

// AIStatus handles GET /api/v1/ai/status.
func (s *Server) AIStatus(w http.ResponseWriter, r *http.Request) {
	ctx, usage := domain.NewContextWithUsage(r.Context())
	st := s.health.AIStatus(ctx)
	setAIHeaders(w, usage)
	writeJSON(w, http.StatusOK, aiStatusToDTO(st))
}

// GetUsage handles GET /api/v1/usage?period=day|month|total.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	period, ok := domusage.ParsePeriod(r.URL.Query().Get("period"))
	if !ok {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "period must be day, month or total")
		return
	}

	report := s.usage.GetReport(r.Context(), period)
	writeJSON(w, http.StatusOK, usageToDTO(report))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Success: report.Status != healthuc.Unhealthy,
		Status:  string(report.Status),
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body into dst and validates it. It writes the error
// response itself and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validator.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, validationMessage(err))
		return false
	}
	return true
}

func setAIHeaders(w http.ResponseWriter, usage *domain.GenerationUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-AI-Tokens", strconv.Itoa(usage.TotalTokens))
		w.Header().Set("X-AI-Calls", strconv.Itoa(usage.Calls))
	}
}
