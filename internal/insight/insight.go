// Package insight asks an LLM for a short reflection on a revealed quiz
// result.
package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/signalquiz/internal/llm"
	"github.com/abhisek/signalquiz/internal/quiz"
)

// Insight is the reflection shown under a revealed result.
type Insight struct {
	Headline string `json:"headline"`
	Advice   string `json:"advice"`
}

// Input is what the model sees about one finished quiz.
type Input struct {
	Score    int
	Category quiz.Category
	Picks    []quiz.Pick
}

// Config tunes generation.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func DefaultConfig() Config {
	return Config{MaxTokens: 300, Temperature: 0.7, Timeout: 30 * time.Second}
}

// Schema constrains the model output.
var Schema = &llm.Schema{
	Name:        "result-insight",
	Description: "A two-sentence reflection on a creator quiz result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "One sentence naming the creator's strongest habit (max 12 words)",
			},
			"advice": map[string]any{
				"type":        "string",
				"description": "One concrete sentence on what to change next",
			},
		},
		"required":             []any{"headline", "advice"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You coach online content creators. Reply with a short, specific and kind reflection. Never mention scores, quizzes or categories by name. Plain text only.`

// Service generates insights with one provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Generate blocks until the provider answers or cfg.Timeout elapses.
func (s *Service) Generate(ctx context.Context, in Input) (*Insight, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "insight")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(in),
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate insight: %w", err)
	}

	var out Insight
	if err := llm.Decode(resp, Schema, &out); err != nil {
		return nil, fmt.Errorf("decode insight: %w", err)
	}
	out.Headline = strings.TrimSpace(out.Headline)
	out.Advice = strings.TrimSpace(out.Advice)
	if out.Headline == "" || out.Advice == "" {
		return nil, fmt.Errorf("decode insight: empty field")
	}
	return &out, nil
}

func buildPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Result: %s (%s)\n", in.Category.Title, in.Category.Description)
	fmt.Fprintf(&b, "Total: %d of %d\n\nAnswers:\n", in.Score, quiz.MaxScore)
	for _, p := range in.Picks {
		fmt.Fprintf(&b, "- %s -> %s\n", p.Question.Prompt, p.Answer.Text)
	}
	b.WriteString("\nWrite a headline about the habit that stands out and one piece of advice for the habit that holds them back most.")
	return b.String()
}
