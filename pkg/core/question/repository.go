// Package question is the port through which the core asks structured
// questions of a language model. The generic Ask helper owns the prompt
// side of the typed-answer contract: it embeds the unmarshaler's serialized
// schema into the question and decodes the raw answer through the same
// unmarshaler, so the expected shape is single-sourced per call site.
package question

import (
	"context"

	"npc_outfitter/pkg/core/result"
	"npc_outfitter/pkg/core/schema"
	"npc_outfitter/pkg/core/utils"
)

// AskOptions carries optional extras for one ask round trip.
type AskOptions struct {
	// AdditionalContext is injected as system-level content ahead of the
	// main system prompt, used to pass retrieved catalog listings.
	AdditionalContext string
}

// Repository is the external collaborator contract: raw text in, raw text
// out, plus embedding translation for semantic search.
type Repository interface {
	Ask(ctx context.Context, systemPrompt, question string, opts *AskOptions) (string, error)
	// TranslateToEmbeddings fails hard on error: the catalog layer cannot
	// function without embeddings.
	TranslateToEmbeddings(ctx context.Context, text string) ([]float32, error)
}

// Ask sends a system prompt and a question with the unmarshaler's schema
// description appended, then validates and decodes the model's answer.
// A transport failure comes back as a soft error; a malformed answer comes
// back as whatever soft error the unmarshaler produced.
func Ask[T any](ctx context.Context, repo Repository, systemPrompt, prompt string, um schema.Unmarshaler[T], opts *AskOptions) result.ErrorAware[T] {
	fullPrompt := prompt +
		"\n\nProvide the response as a single JSON object in exactly this format:\n" +
		um.SerializeSchema() +
		"\nDON'T explain the answer, just provide the JSON object."

	raw, err := repo.Ask(ctx, systemPrompt, fullPrompt, opts)
	if err != nil {
		return result.Fail[T]("unable to get response from model", err.Error())
	}

	// Models habitually wrap JSON in markdown fences; strip those before the
	// strict unmarshaler sees the text.
	return um.Unmarshal(utils.CleanMarkdown(raw))
}
