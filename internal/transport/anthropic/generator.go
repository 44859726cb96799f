// Package anthropic adapts the Anthropic Messages API to domain.Generator.
package anthropic

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogai/internal/domain"
	"github.com/kailas-cloud/catalogai/internal/transport/aihttp"
)

// stopReasonRefusal is returned when the model declines to answer.
const stopReasonRefusal = "refusal"

// Config holds the provider settings.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	ConnectTimeout time.Duration
	Logger         *zap.Logger
}

// Generator calls the Messages API.
type Generator struct {
	client anthropic.Client
	model  anthropic.Model
	logger *zap.Logger
}

// NewGenerator creates an Anthropic generator. SDK retries are disabled:
// the caller's deadline bounds the whole call and any failure falls back.
func NewGenerator(cfg *Config) *Generator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(aihttp.NewClient(cfg.ConnectTimeout)),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		client: anthropic.NewClient(opts...),
		model:  anthropic.Model(cfg.Model),
		logger: logger,
	}
}

// Generate implements domain.Generator.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = domain.DefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       g.model,
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(float64(req.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return domain.GenerationResult{}, classify(ctx, err)
	}

	if string(msg.StopReason) == stopReasonRefusal {
		return domain.GenerationResult{}, domain.NewGenerationError(
			domain.FailureSafety, "Content blocked by safety filters", nil)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return domain.GenerationResult{}, domain.NewGenerationError(
			domain.FailureNoContent, "No content in API response", nil)
	}

	model := string(msg.Model)
	if model == "" {
		model = string(g.model)
	}
	in, out := int(msg.Usage.InputTokens), int(msg.Usage.OutputTokens)

	g.logger.Debug("Message finished",
		zap.String("model", model),
		zap.String("stop_reason", string(msg.StopReason)),
		zap.Int("total_tokens", in+out),
	)

	return domain.GenerationResult{
		Text:             text,
		Model:            model,
		PromptTokens:     in,
		CompletionTokens: out,
		TotalTokens:      in + out,
	}, nil
}

// HealthCheck lists models, which costs no tokens.
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.Models.List(ctx, anthropic.ModelListParams{}); err != nil {
		return classify(ctx, err)
	}
	return nil
}

func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewGenerationError(domain.FailureTimeout, "Request timed out", err)
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		raw := apiErr.RawJSON()
		return domain.NewStatusError(apiErr.StatusCode, extractMessage(raw),
			errors.WithDetail(err, aihttp.Snippet([]byte(raw))))
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.NewGenerationError(domain.FailureTimeout, "Request timed out", err)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return domain.NewGenerationError(domain.FailureMalformed, "Unexpected API response format", err)
	}

	return domain.NewGenerationError(domain.FailureNetwork, "Network error: "+err.Error(), err)
}

// extractMessage reads error.message from {"type":"error","error":{...}}.
func extractMessage(raw string) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal([]byte(raw), &body) != nil {
		return ""
	}
	return body.Error.Message
}
