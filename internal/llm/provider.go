// Package llm wraps the hosted language models used by the alternate diagnostic engine.
package llm

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/hafljin/inquiry-automation/internal/errors"
)

// Provider generates a single free-text completion
type Provider interface {
	GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error)
	Name() string
}

// ProviderType selects the hosted model family
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOpenAI ProviderType = "openai"
)

// Config holds provider settings
type Config struct {
	Provider    ProviderType
	GeminiKey   string
	OpenAIKey   string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration

	// BaseURL overrides the provider endpoint
	BaseURL string
}

// DefaultModel returns the model used when none is configured
func DefaultModel(p ProviderType) string {
	switch p {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return "gemini-2.5-flash"
	}
}

// NewProvider creates the configured provider.
// A missing credential yields errors.ErrNotConfigured.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required: %w", apperrors.ErrNotConfigured)
		}
		return NewGeminiProvider(cfg), nil

	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required: %w", apperrors.ErrNotConfigured)
		}
		return NewOpenAIProvider(cfg), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Provider)
	}
}
