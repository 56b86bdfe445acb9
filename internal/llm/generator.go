package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	apperrors "github.com/hafljin/inquiry-automation/internal/errors"
	"github.com/hafljin/inquiry-automation/internal/logger"
	"github.com/hafljin/inquiry-automation/internal/metrics"
	"github.com/hafljin/inquiry-automation/pkg/utils"
)

// FailureMessage is returned whenever no model output is available
const FailureMessage = "申し訳ございません。ただいまAIからの応答を取得できませんでした。しばらくしてから再度お試しください。"

// GeneratorConfig configures the breaker and per-call timeout
type GeneratorConfig struct {
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
	Fallback        string
}

// DefaultGeneratorConfig returns the defaults used when nothing is configured
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Timeout:         20 * time.Second,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
		Fallback:        FailureMessage,
	}
}

// Generator calls a provider once per request behind a circuit breaker.
// It never retries and never returns an error to the caller.
type Generator struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker[string]
	fallback string
	timeout  time.Duration
}

// NewGenerator creates a generator. A nil provider makes every call return the fallback.
func NewGenerator(provider Provider, cfg GeneratorConfig) *Generator {
	if cfg.Fallback == "" {
		cfg.Fallback = FailureMessage
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}

	g := &Generator{
		provider: provider,
		fallback: cfg.Fallback,
		timeout:  cfg.Timeout,
	}

	if provider != nil {
		g.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:        "llm-" + provider.Name(),
			MaxRequests: 1,
			Timeout:     cfg.BreakerTimeout,
			// cancelled calls do not count against the upstream
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.BreakerFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
				metrics.RecordBreakerChange(name, to.String())
			},
		})
	}

	return g
}

// Available reports whether a provider is configured
func (g *Generator) Available() bool {
	return g.provider != nil
}

// Generate returns the model output or the fallback text
func (g *Generator) Generate(ctx context.Context, systemPrompt, userMessage string) string {
	text, err := g.TryGenerate(ctx, systemPrompt, userMessage)
	if err != nil {
		return g.fallback
	}
	return text
}

// TryGenerate is Generate with the failure cause exposed
func (g *Generator) TryGenerate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if g.provider == nil {
		logger.Warn("LLM call skipped, no provider configured")
		return "", apperrors.ErrNotConfigured
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.breaker.Execute(func() (string, error) {
		out, err := g.provider.GenerateResponse(ctx, systemPrompt, userMessage)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(out) == "" {
			return "", errors.New("empty completion")
		}
		return out, nil
	})

	if err != nil {
		status := "error"
		if errors.Is(err, context.Canceled) {
			status = "canceled"
		} else if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			status = "rejected"
		}
		metrics.RecordLLMCall(g.provider.Name(), status)
		logger.Error("LLM call failed",
			"provider", g.provider.Name(),
			"status", status,
			"error", err,
			"duration", time.Since(start),
			"input_hash", utils.ShortHash(userMessage),
		)
		return "", apperrors.UpstreamError{Provider: g.provider.Name(), Err: err}
	}

	metrics.RecordLLMCall(g.provider.Name(), "ok")
	return strings.TrimSpace(text), nil
}
