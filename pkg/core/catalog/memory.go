package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"npc_outfitter/pkg/core/result"
)

// MemoryRepository is an in-memory catalog for development and tests. It
// scores candidates by keyword overlap with the semantic query instead of
// vector distance, then applies the same hard post-filter as the Postgres
// store.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []Equipment

	// FailWith, when set, makes every lookup report a backing-store
	// failure. Tests use it to exercise error propagation.
	FailWith string
}

func NewMemoryRepository(items ...Equipment) *MemoryRepository {
	return &MemoryRepository{items: items}
}

var _ Repository = (*MemoryRepository)(nil)

// Add appends items to the catalog.
func (r *MemoryRepository) Add(items ...Equipment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, items...)
}

func (r *MemoryRepository) FindByCriteria(ctx context.Context, criteria Criteria, additionalContext string, maxResults int) result.ErrorAware[[]Equipment] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailWith != "" {
		return result.Fail[[]Equipment](r.FailWith, "")
	}
	if maxResults <= 0 {
		maxResults = 20
	}

	keywords := strings.Fields(strings.ToLower(criteria.SemanticQuery(additionalContext)))

	type scored struct {
		item  Equipment
		score int
	}
	var candidates []scored
	for _, item := range r.items {
		if !criteria.Matches(item) {
			continue
		}
		doc := strings.ToLower(item.IndexDocument())
		score := 0
		for _, kw := range keywords {
			if strings.Contains(doc, kw) {
				score++
			}
		}
		candidates = append(candidates, scored{item, score})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	matches := make([]Equipment, 0, maxResults)
	for _, c := range candidates {
		if len(matches) == maxResults {
			break
		}
		matches = append(matches, c.item)
	}
	return result.OK(matches)
}
