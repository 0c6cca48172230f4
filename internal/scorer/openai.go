package scorer

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/avolokh/lazaret/internal/model"
)

// OpenAIProvider implements the Provider interface for OpenAI models.
type OpenAIProvider struct {
	client *openai.Client
	config model.ScorerConfig
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg model.ScorerConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Score rates the text on each attribute via the Chat Completions API.
func (p *OpenAIProvider) Score(ctx context.Context, text string, attrs []Attribute) (*Result, error) {
	modelName := p.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
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

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You rate content attributes and answer with a single JSON object.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(text, attrs),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0, // deterministic scoring
	})
	if err != nil {
		return nil, unavailable("openai", err)
	}
	if len(resp.Choices) == 0 {
		return nil, unavailable("openai", fmt.Errorf("empty response"))
	}

	raw := resp.Choices[0].Message.Content
	values, err := ParseScores(raw, attrs)
	if err != nil {
		return nil, unavailable("openai", err)
	}

	return &Result{Values: values, Raw: raw}, nil
}
