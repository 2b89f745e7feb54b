package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vidstats/vidstats/internal/port"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *MistralProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewMistralProvider(MistralConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "mistral-small-latest",
	})
	if err != nil {
		t.Fatalf("NewMistralProvider() error = %v", err)
	}
	return p
}

func completionResponse(content string) string {
	return `{"choices":[{"message":{"content":` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGenerateSQLSendsContractAndPinnedTemperature(t *testing.T) {
	var captured struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		Temperature float64 `json:"temperature"`
	}

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(completionResponse("```sql\nSELECT COUNT(*) AS result FROM videos;\n```")))
	})

	raw, err := p.GenerateSQL(context.Background(), "сколько всего видео есть в системе")
	if err != nil {
		t.Fatalf("GenerateSQL() error = %v", err)
	}
	if !strings.Contains(raw, "SELECT COUNT(*) AS result FROM videos;") {
		t.Fatalf("GenerateSQL() = %q", raw)
	}

	if captured.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", captured.Temperature)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || !strings.Contains(captured.Messages[0].Content, "Table videos") {
		t.Errorf("system message does not carry the schema contract")
	}
	if captured.Messages[1].Role != "user" || captured.Messages[1].Content != "сколько всего видео есть в системе" {
		t.Errorf("user message = %+v", captured.Messages[1])
	}
}

func TestGenerateSQLEmptyCompletionIsUnavailable(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := p.GenerateSQL(context.Background(), "anything")
	if !errors.Is(err, port.ErrTranslationUnavailable) {
		t.Fatalf("error = %v, want ErrTranslationUnavailable", err)
	}
}

func TestGenerateSQLAPIErrorIsUnavailable(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
	})

	_, err := p.GenerateSQL(context.Background(), "anything")
	if !errors.Is(err, port.ErrTranslationUnavailable) {
		t.Fatalf("error = %v, want ErrTranslationUnavailable", err)
	}
}

func TestGenerateSQLHonorsCancellation(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.GenerateSQL(ctx, "anything")
	if !errors.Is(err, port.ErrTranslationUnavailable) {
		t.Fatalf("error = %v, want ErrTranslationUnavailable", err)
	}
}

func TestNewMistralProviderRequiresKey(t *testing.T) {
	if _, err := NewMistralProvider(MistralConfig{BaseURL: "https://api.mistral.ai"}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
