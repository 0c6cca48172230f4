package scorer

import (
	"context"
	"fmt"
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/avolokh/lazaret/internal/model"
)

const defaultAnthropicModel = "claude-3-haiku-20240307"

// AnthropicProvider implements the Provider interface for Anthropic models.
type AnthropicProvider struct {
	client *anthropic.Client
	config model.ScorerConfig
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(cfg model.ScorerConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	var opts []anthropic.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicProvider{
		client: anthropic.NewClient(cfg.APIKey, opts...),
		config: cfg,
	}, nil
}

// Name returns the provider name.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// IsAvailable checks if the provider is configured. Anthropic has no
// lightweight list endpoint, so this only verifies the key is present.
func (p *AnthropicProvider) IsAvailable(ctx context.Context) bool {
	return p.config.APIKey != ""
}

// Score rates the text on each attribute via the Messages API.
func (p *AnthropicProvider) Score(ctx context.Context, text string, attrs []Attribute) (*Result, error) {
	modelName := p.config.Model
	if modelName == "" {
		modelName = defaultAnthropicModel
	}

	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 256
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateMessages(ctxWithTimeout, anthropic.MessagesRequest{
		Model: anthropic.Model(modelName),
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(BuildPrompt(text, attrs)),
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, unavailable("anthropic", err)
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == nil {
		return nil, unavailable("anthropic", fmt.Errorf("empty response"))
	}

	raw := *resp.Content[0].Text
	values, err := ParseScores(raw, attrs)
	if err != nil {
		return nil, unavailable("anthropic", err)
	}

	return &Result{Values: values, Raw: raw}, nil
}
