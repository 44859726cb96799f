package validate

import (
	"context"

	"github.com/kailas-cloud/catalogai/internal/domain"
)

// Generator produces model text for a prompt.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error)
}
