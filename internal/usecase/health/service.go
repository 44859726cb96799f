package health

import (
	"context"

	"github.com/kailas-cloud/catalogai/internal/domain"
	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure. Searches still work through the fallback.
	Degraded Status = "degraded"
	// Unhealthy indicates the catalog is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// ProbeQuery is the query used by AIStatus.
const ProbeQuery = "test query"

// AIStatus is the outcome of an end-to-end model probe.
type AIStatus struct {
	Configured        bool
	Online            bool
	Provider          string
	Model             string
	FallbackAvailable bool
	Provenance        interpretation.Provenance
	Failure           *interpretation.Failure
}

// Service coordinates health checks.
type Service struct {
	catalog  CatalogPinger
	ai       AIChecker
	prober   Prober
	provider string
}

// New creates a Service. ai and prober can be nil.
func New(catalog CatalogPinger, ai AIChecker, prober Prober, provider string) *Service {
	return &Service{catalog: catalog, ai: ai, prober: prober, provider: provider}
}

// Check runs health checks against all components. A failing model provider
// only degrades the service; a failing catalog makes it unhealthy.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.catalog.Ping(ctx); err != nil {
		checks["catalog"] = CheckError
		status = Unhealthy
	} else {
		checks["catalog"] = CheckOK
	}

	if s.ai != nil {
		if err := s.ai.HealthCheck(ctx); err != nil {
			checks["ai"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["ai"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}

// AIStatus interprets ProbeQuery and reports whether the model answered.
// The lexicon fallback is always available.
func (s *Service) AIStatus(ctx context.Context) AIStatus {
	st := AIStatus{Provider: s.provider, FallbackAvailable: true}
	if s.prober == nil {
		st.Failure = &interpretation.Failure{Kind: domain.FailureNotConfigured, Message: "AI service not configured"}
		st.Provenance = interpretation.Fallback
		return st
	}
	st.Configured = s.prober.Configured()

	res, err := s.prober.Interpret(ctx, ProbeQuery)
	if err != nil {
		st.Provenance = interpretation.Fallback
		st.Failure = &interpretation.Failure{Kind: domain.FailureKindOf(err), Message: err.Error()}
		return st
	}
	st.Online = res.Success()
	st.Model = res.Model()
	st.Provenance = res.Provenance()
	st.Failure = res.Failure()
	return st
}
