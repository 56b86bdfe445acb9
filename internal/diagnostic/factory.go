package diagnostic

import (
	"fmt"

	"github.com/hafljin/inquiry-automation/config"
	"github.com/hafljin/inquiry-automation/internal/chat"
	"github.com/hafljin/inquiry-automation/internal/classifier"
	"github.com/hafljin/inquiry-automation/internal/llm"
	"github.com/hafljin/inquiry-automation/internal/logger"
)

// NewEngine builds the engine named by DIAGNOSTIC_ENGINE.
// An llm engine without a usable provider still starts; its model calls return the fallback text.
func NewEngine(cfg *config.Config) (Engine, error) {
	rules := NewRuleEngine(classifier.New(), chat.NewResponder())

	switch cfg.Diagnostic.Engine {
	case config.EngineRules, "":
		return rules, nil

	case config.EngineLLM:
		provider, err := llm.NewProvider(llmConfig(cfg.LLM))
		if err != nil {
			logger.Warn("LLM provider unavailable, model output will use the fallback text", "error", err)
			provider = nil
		}
		gen := llm.NewGenerator(provider, llm.GeneratorConfig{
			Timeout:         cfg.LLM.Timeout,
			BreakerFailures: uint32(cfg.LLM.BreakerFailures),
			BreakerTimeout:  cfg.LLM.BreakerTimeout,
		})
		return NewLLMEngine(rules, gen, cfg.Diagnostic.BusinessName), nil

	default:
		return nil, fmt.Errorf("unknown diagnostic engine: %s", cfg.Diagnostic.Engine)
	}
}

// DelaysFromConfig maps the configured delays
func DelaysFromConfig(cfg config.DiagnosticConfig) Delays {
	return Delays{
		Text:      cfg.TextDelay,
		Selection: cfg.SelectionDelay,
		Chat:      cfg.ChatDelay,
	}
}

func llmConfig(c config.LLMConfig) llm.Config {
	p := llm.ProviderType(c.Provider)
	model := c.Model
	if model == "" {
		model = llm.DefaultModel(p)
	}
	return llm.Config{
		Provider:    p,
		GeminiKey:   c.GeminiAPIKey,
		OpenAIKey:   c.OpenAIAPIKey,
		Model:       model,
		Temperature: float32(c.Temperature),
		MaxTokens:   c.MaxTokens,
		Timeout:     c.Timeout,
	}
}
