package domain

import (
	"context"
)

// Generator is the text generation contract shared between layers. Provider
// adapters, the response cache and the instrumented decorator all implement it.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error)
}

// HealthChecker verifies model provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// GenerationRequest is a single prompt sent to the model.
type GenerationRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
	// JSON asks the provider for a JSON object response when it supports it.
	JSON bool
}

// GenerationResult carries the model output and token usage through the decorator chain.
type GenerationResult struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Cached           bool
}

// Default generation settings for deterministic extraction.
const (
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 512
)

// placeholderKeys are sample values shipped in example env files.
var placeholderKeys = map[string]struct{}{
	"your_api_key_here":        {},
	"your_gemini_api_key_here": {},
	"your_openai_api_key_here": {},
	"changeme":                 {},
}

// IsConfiguredKey reports whether an API key looks usable: non-empty and not a placeholder.
func IsConfiguredKey(key string) bool {
	if key == "" {
		return false
	}
	_, placeholder := placeholderKeys[key]
	return !placeholder
}
