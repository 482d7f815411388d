package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

var insightSchema = &Schema{
	Name: "test-insight",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{"type": "string"},
			"advice":   map[string]any{"type": "string"},
		},
		"required":             []string{"headline", "advice"},
		"additionalProperties": false,
	},
}

func newTestAnthropic(t *testing.T, h http.HandlerFunc) *Anthropic {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewAnthropic(Config{Provider: "anthropic", APIKey: "k", Model: "claude-haiku-4-5", BaseURL: srv.URL},
		option.WithMaxRetries(0))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func anthropicReply(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 40, "output_tokens": 12},
	}
}

func TestAnthropicGenerate(t *testing.T) {
	var body map[string]any
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicReply(`{"headline":"Builder","advice":"Ship weekly."}`, "end_turn"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System: "sys", Prompt: "hello", Schema: insightSchema, MaxTokens: 200,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 12 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.Truncated {
		t.Fatal("should not be truncated")
	}
	if body["max_tokens"].(float64) != 200 {
		t.Fatalf("max_tokens = %v", body["max_tokens"])
	}
	if _, ok := body["output_config"]; !ok {
		t.Fatal("expected output_config in request")
	}
}

func TestAnthropicSchemaMismatch(t *testing.T) {
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicReply(`{"headline":"x"}`, "end_turn"))
	})
	_, err := p.Generate(context.Background(), Request{Prompt: "p", Schema: insightSchema, MaxTokens: 10})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("want ErrInvalidResponse, got %v", err)
	}
}

func TestAnthropicStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusInternalServerError, func(err error) bool { var e *ErrUnavailable; return errors.As(err, &e) }},
		{http.StatusUnauthorized, func(err error) bool {
			var rl *ErrRateLimit
			var un *ErrUnavailable
			return err != nil && !errors.As(err, &rl) && !errors.As(err, &un)
		}},
	}
	for _, tt := range tests {
		p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tt.status)
			w.Write([]byte(`{"type":"error","error":{"type":"x","message":"nope"}}`))
		})
		_, err := p.Generate(context.Background(), Request{Prompt: "p", MaxTokens: 10})
		if !tt.check(err) {
			t.Errorf("status %d: unexpected error %v", tt.status, err)
		}
	}
}

func TestNewAnthropicRequiresKey(t *testing.T) {
	if _, err := NewAnthropic(Config{Provider: "anthropic"}); err == nil {
		t.Fatal("expected error without key")
	}
}
