package catalog

import (
	"context"

	"npc_outfitter/pkg/core/result"
)

// minSimilarity is the cosine-similarity floor below which fuzzy retrieval
// matches are discarded before post-filtering.
const minSimilarity = 0.60

// Embedder is the slice of the question port the catalog needs.
type Embedder interface {
	TranslateToEmbeddings(ctx context.Context, text string) ([]float32, error)
}

// Repository retrieves equipment matching criteria plus free-text semantic
// context. An empty slice means "query ran, nothing qualifies" and is not
// an error; a soft error means the backing store itself failed.
type Repository interface {
	FindByCriteria(ctx context.Context, criteria Criteria, additionalContext string, maxResults int) result.ErrorAware[[]Equipment]
}
