// Package openai adapts any OpenAI-compatible chat completions endpoint
// (OpenAI, Gemini's compatibility endpoint, local servers) to domain.Generator.
package openai

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogai/internal/domain"
	"github.com/kailas-cloud/catalogai/internal/transport/aihttp"
)

// Generator calls the chat completions API.
type Generator struct {
	client   *openai.Client
	model    string
	jsonMode bool
	logger   *zap.Logger
}

// Config holds the provider settings.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	ConnectTimeout time.Duration
	// JSONMode sends response_format=json_object. Some compatible servers reject it.
	JSONMode bool
	Logger   *zap.Logger
}

// NewGenerator creates an OpenAI-compatible generator.
func NewGenerator(cfg *Config) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = aihttp.NewClient(cfg.ConnectTimeout)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		jsonMode: cfg.JSONMode,
		logger:   logger,
	}
}

// Generate implements domain.Generator.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	chatReq := openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSON && g.jsonMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return domain.GenerationResult{}, classify(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return domain.GenerationResult{}, domain.NewGenerationError(
			domain.FailureMalformed, "Unexpected API response format: no choices", nil)
	}

	choice := resp.Choices[0]
	switch strings.ToLower(string(choice.FinishReason)) {
	case string(openai.FinishReasonContentFilter), "safety":
		return domain.GenerationResult{}, domain.NewGenerationError(
			domain.FailureSafety, "Content blocked by safety filters", nil)
	case "recitation":
		return domain.GenerationResult{}, domain.NewGenerationError(
			domain.FailureRecitation, "Content blocked due to recitation concerns", nil)
	}

	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return domain.GenerationResult{}, domain.NewGenerationError(
			domain.FailureNoContent, "No content in API response", nil)
	}

	model := resp.Model
	if model == "" {
		model = g.model
	}
	g.logger.Debug("Chat completion finished",
		zap.String("model", model),
		zap.String("finish_reason", string(choice.FinishReason)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return domain.GenerationResult{
		Text:             text,
		Model:            model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return classify(ctx, err)
	}
	return nil
}

// classify maps SDK and transport errors to a domain.GenerationError.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewGenerationError(domain.FailureTimeout, "Request timed out", err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return domain.NewStatusError(apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := extractMessage(reqErr.Body)
		cause := errors.WithDetail(err, aihttp.Snippet(reqErr.Body))
		return domain.NewStatusError(reqErr.HTTPStatusCode, msg, cause)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.NewGenerationError(domain.FailureTimeout, "Request timed out", err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return domain.NewGenerationError(domain.FailureMalformed, "Unexpected API response format", err)
	}

	return domain.NewGenerationError(domain.FailureNetwork, "Network error: "+err.Error(), err)
}

// extractMessage pulls a readable message out of an error body. Providers use
// {"error":{"message":...}}, {"error":"..."} or {"detail":"..."}.
func extractMessage(body []byte) string {
	var parsed struct {
		Error  json.RawMessage `json:"error"`
		Detail string          `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return ""
	}
	if parsed.Detail != "" {
		return parsed.Detail
	}
	var nested struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(parsed.Error, &nested) == nil && nested.Message != "" {
		return nested.Message
	}
	var flat string
	if json.Unmarshal(parsed.Error, &flat) == nil {
		return flat
	}
	return ""
}
