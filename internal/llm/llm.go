// Package llm is a small provider-neutral client for single-turn,
// schema-constrained generation.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion per request.
type Provider interface {
	// Generate returns the model output. When req.Schema is set the
	// output is JSON already validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model this provider sends requests to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System      string
	Prompt      string
	Schema      *Schema
	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Schema is a named JSON Schema the output must satisfy.
type Schema struct {
	Name        string // kebab-case, e.g. "result-insight"
	Description string
	Definition  map[string]any
}

// Response is a completion.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
	// Truncated is set when generation stopped at MaxTokens.
	Truncated bool
}

// Usage is token accounting for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

type contextKey struct{}

// WithPurpose labels requests made with ctx for the request journal.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, contextKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(contextKey{}).(string); ok {
		return v
	}
	return "unknown"
}
