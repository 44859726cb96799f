package catalogai

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/catalogai/internal/domain"
)

// Generator produces model text for a prompt. Implement it to use a model
// provider the SDK does not ship. Errors make the call fall back to the
// synonym tables; they are never returned to the caller.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error)
}

// GenerationRequest is a single prompt.
type GenerationRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
	// JSON asks for a JSON object response.
	JSON bool
}

// GenerationResult is the model answer and its token usage.
type GenerationResult struct {
	Text        string
	Model       string
	TotalTokens int
}

// generatorAdapter wraps a public Generator to satisfy domain.Generator.
type generatorAdapter struct {
	inner Generator
}

func (a *generatorAdapter) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	r, err := a.inner.Generate(ctx, GenerationRequest{
		System:      req.System,
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		JSON:        req.JSON,
	})
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("generate: %w", err)
	}
	return domain.GenerationResult{
		Text:        r.Text,
		Model:       r.Model,
		TotalTokens: r.TotalTokens,
	}, nil
}
