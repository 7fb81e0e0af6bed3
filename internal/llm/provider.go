package llm

import (
	"context"
	"encoding/json"
)

// Provider abstracts the model backend used to evaluate answers. Evaluation
// is single-turn: one prompt in, one structured JSON payload out.
type Provider interface {
	// Complete sends the prompt and returns the raw response text. When
	// req.Schema is set the provider asks the backend for JSON conforming
	// to it and validates the result before returning.
	Complete(ctx context.Context, req Request) (json.RawMessage, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes a single completion call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Prompt is the user message.
	Prompt string

	// Schema, when set, selects the backend's structured-output mechanism.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero means deterministic.
	Temperature float64
}

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema, kebab-case (e.g. "answer-evaluation").
	Name string

	// Description guides the model, human readable.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}
