// Package llm abstracts the language-model backends the outfitter can talk
// to. Providers only move text; the typed JSON response contract lives a
// layer up in pkg/core/question and pkg/core/schema.
package llm

import (
	"context"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}
