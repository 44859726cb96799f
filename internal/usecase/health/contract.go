package health

import (
	"context"

	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
)

// CatalogPinger checks catalog backend availability.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// AIChecker checks model provider availability.
type AIChecker interface {
	HealthCheck(ctx context.Context) error
}

// Prober runs a real interpretation to test the model end to end.
type Prober interface {
	Interpret(ctx context.Context, query string) (interpretation.Result, error)
	Configured() bool
}
