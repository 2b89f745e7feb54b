package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vidstats/vidstats/internal/port"
	"github.com/vidstats/vidstats/internal/schema"
)

// MistralConfig holds the configuration for the Mistral chat endpoint.
type MistralConfig struct {
	BaseURL string // e.g. https://api.mistral.ai
	APIKey  string
	Model   string // e.g. mistral-small-latest
}

// MistralProvider implements port.SQLTranslator using the Mistral
// chat-completions REST API. Sampling is pinned to temperature 0 so that
// repeated identical questions tend to produce identical SQL.
type MistralProvider struct {
	cfg          MistralConfig
	systemPrompt string
	httpClient   *http.Client
}

// NewMistralProvider creates a Mistral-backed translator. The system prompt
// is rendered once from the schema contract and reused for every request.
func NewMistralProvider(cfg MistralConfig) (*MistralProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("mistral: API key is required")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("mistral: base URL is required")
	}
	return &MistralProvider{
		cfg:          cfg,
		systemPrompt: schema.SystemPrompt(),
		httpClient:   &http.Client{},
	}, nil
}

// ModelName returns the chat model identifier.
func (m *MistralProvider) ModelName() string {
	return m.cfg.Model
}

// GenerateSQL sends the question with the schema system prompt and returns
// the raw completion text. Timeouts and cancellation come in through ctx;
// failures are reported as port.ErrTranslationUnavailable and never retried
// here.
func (m *MistralProvider) GenerateSQL(ctx context.Context, question string) (string, error) {
	payload := map[string]any{
		"model": m.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": m.systemPrompt},
			{"role": "user", "content": question},
		},
		"temperature": 0.0,
	}

	body, err := m.post(ctx, "/v1/chat/completions", payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", port.ErrTranslationUnavailable, err)
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: decode completion: %v", port.ErrTranslationUnavailable, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: empty completion", port.ErrTranslationUnavailable)
	}

	return resp.Choices[0].Message.Content, nil
}

// post is a helper for POST requests to the Mistral API.
func (m *MistralProvider) post(ctx context.Context, path string, payload any) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.BaseURL+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mistral API error (%d): %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
