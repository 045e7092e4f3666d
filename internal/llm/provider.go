// Package llm wraps the hosted model APIs behind one Provider interface
// that returns schema-validated JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a prompt.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the provider asks for JSON matching it and validates the reply
	// before returning.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model this provider sends requests to.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, selects the provider's structured output mode.
	// Without it the reply text is returned as-is.
	Schema *Schema

	MaxTokens int

	// Temperature in [0,1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is kebab-case, e.g. "quiz-draft". Providers use it as the
	// tool or schema name.
	Name        string
	Description string
	Definition  map[string]any

	// Example is a document that satisfies Definition. It is never sent to
	// a provider; the mock provider replies with it.
	Example json.RawMessage
}

// Response is the output of a Generate call.
type Response struct {
	// Content is the validated JSON document when a Schema was requested.
	Content json.RawMessage

	Usage Usage
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage counts tokens for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
