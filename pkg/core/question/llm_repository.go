package question

import (
	"context"
	"fmt"
	"os"
	"sync"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"npc_outfitter/pkg/core/agent"
)

const embeddingModel = "text-embedding-004"

// LLMRepository implements Repository on top of the agent manager, so the
// chat backend is whatever config/models.yaml selects for the agent role.
// Embeddings always go to Gemini's embedding model regardless of the chat
// provider, since the catalog vectors were built with it.
type LLMRepository struct {
	manager   *agent.Manager
	agentType string

	mu     sync.Mutex
	embeds *genai.Client
}

// NewLLMRepository builds a repository asking as the given agent role
// (e.g. "budget", "shopper").
func NewLLMRepository(manager *agent.Manager, agentType string) *LLMRepository {
	return &LLMRepository{manager: manager, agentType: agentType}
}

// Ask forwards to the configured provider. Additional context, when
// present, is prepended as system-level content ahead of the main system
// prompt.
func (r *LLMRepository) Ask(ctx context.Context, systemPrompt, question string, opts *AskOptions) (string, error) {
	effectiveSystem := systemPrompt
	if opts != nil && opts.AdditionalContext != "" {
		effectiveSystem = opts.AdditionalContext + "\n\n" + systemPrompt
	}

	answer, err := r.manager.ExecutePrompt(ctx, r.agentType, question, effectiveSystem, nil)
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}
	return answer, nil
}

// TranslateToEmbeddings converts text into a deterministic-length embedding
// vector for semantic search.
func (r *LLMRepository) TranslateToEmbeddings(ctx context.Context, text string) ([]float32, error) {
	client, err := r.embeddingClient(ctx)
	if err != nil {
		return nil, err
	}

	em := client.EmbeddingModel(embeddingModel)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embedding model returned an empty vector")
	}
	return res.Embedding.Values, nil
}

func (r *LLMRepository) embeddingClient(ctx context.Context) (*genai.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.embeds != nil {
		return r.embeds, nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}
	r.embeds = client
	return client, nil
}

// Close releases the embedding client, if one was created.
func (r *LLMRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.embeds != nil {
		err := r.embeds.Close()
		r.embeds = nil
		return err
	}
	return nil
}
