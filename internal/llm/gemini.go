package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1"

// GeminiProvider calls the Gemini generateContent REST endpoint
type GeminiProvider struct {
	apiKey      string
	model       string
	temperature float32
	maxTokens   int
	baseURL     string
	client      *http.Client
}

// NewGeminiProvider creates a Gemini provider
func NewGeminiProvider(cfg Config) *GeminiProvider {
	model := cfg.Model
	if model == "" {
		model = DefaultModel(ProviderGemini)
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	return &GeminiProvider{
		apiKey:      cfg.GeminiKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		baseURL:     baseURL,
		client:      &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return string(ProviderGemini)
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateResponse sends one prompt. The v1 endpoint has no system role, so the system prompt leads the user turn.
func (p *GeminiProvider) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, url.PathEscape(p.model), url.QueryEscape(p.apiKey))

	text := userMessage
	if systemPrompt != "" {
		text = systemPrompt + "\n\n" + userMessage
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: text}}, Role: "user"}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     p.temperature,
			MaxOutputTokens: p.maxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error (model: %s, status: %d): %s", p.model, resp.StatusCode, string(raw))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini (candidates: %d)", len(parsed.Candidates))
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
