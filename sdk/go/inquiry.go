// Package sdk is a small client for the public inquiry diagnostic endpoints.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{BaseURL: baseURL, HTTP: &http.Client{Timeout: 30 * time.Second}}
}

type Tier struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	PriceRange  string   `json:"priceRange,omitempty"`
	Suitability int      `json:"suitability"`
}

type Diagnostic struct {
	AIMessage string `json:"aiMessage"`
	Patterns  []Tier `json:"patterns"`
	Analysis  string `json:"analysis"`
}

type Validation struct {
	IsValid      bool   `json:"isValid"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type ChatReply struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError is a non-2xx response. Message holds the server's human-readable text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inquiry api: %d %s", e.StatusCode, e.Message)
}

func (c *Client) Validate(ctx context.Context, text string) (Validation, error) {
	var out Validation
	err := c.post(ctx, "/v1/inquiries/validate", map[string]string{"text": text}, &out)
	return out, err
}

// Analyze returns *APIError with status 422 when the text is rejected
func (c *Client) Analyze(ctx context.Context, text string) (Diagnostic, error) {
	var out Diagnostic
	err := c.post(ctx, "/v1/inquiries/analyze", map[string]string{"text": text}, &out)
	return out, err
}

func (c *Client) Select(ctx context.Context, inquiryTypes, channels []string) (Diagnostic, error) {
	if inquiryTypes == nil {
		inquiryTypes = []string{}
	}
	if channels == nil {
		channels = []string{}
	}
	var out Diagnostic
	err := c.post(ctx, "/v1/diagnostics/selection", map[string][]string{
		"inquiryTypes": inquiryTypes,
		"channels":     channels,
	}, &out)
	return out, err
}

func (c *Client) Chat(ctx context.Context, message string) (ChatReply, error) {
	var out ChatReply
	err := c.post(ctx, "/v1/chat/messages", map[string]string{"text": message}, &out)
	return out, err
}

func (c *Client) Tiers(ctx context.Context) ([]Tier, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/tiers", nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Data []Tier `json:"data"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Message == "" {
			e.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Message}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
