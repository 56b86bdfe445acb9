package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider calls the chat completions API
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIProvider creates an OpenAI provider
func NewOpenAIProvider(cfg Config) *OpenAIProvider {
	model := cfg.Model
	if model == "" {
		model = DefaultModel(ProviderOpenAI)
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	config := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return string(ProviderOpenAI)
}

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}
