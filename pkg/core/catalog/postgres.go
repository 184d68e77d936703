package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"npc_outfitter/pkg/core/result"
)

// PostgresRepository backs the catalog with Postgres + pgvector: one
// equipment table carrying both the row data and its embedding, seeded by
// cmd/tools/seed.
type PostgresRepository struct {
	pool     *pgxpool.Pool
	embedder Embedder
}

func NewPostgresRepository(pool *pgxpool.Pool, embedder Embedder) *PostgresRepository {
	return &PostgresRepository{pool: pool, embedder: embedder}
}

var _ Repository = (*PostgresRepository)(nil)

// FindByCriteria embeds the criteria's semantic query, pulls the nearest
// candidates by cosine distance, keeps those above the similarity floor,
// then post-filters against the hard price/TL/section constraints.
func (r *PostgresRepository) FindByCriteria(ctx context.Context, criteria Criteria, additionalContext string, maxResults int) result.ErrorAware[[]Equipment] {
	if maxResults <= 0 {
		maxResults = 20
	}

	vector, err := r.embedder.TranslateToEmbeddings(ctx, criteria.SemanticQuery(additionalContext))
	if err != nil {
		return result.Fail[[]Equipment](fmt.Sprintf("unable to embed catalog query: %v", err), "")
	}

	query := `
		SELECT id, section, subsection, name, tl, mass, price, ammo_price,
		       species, skill, book, page, contraband, category, law, notes,
		       mod, needs,
		       1 - (embedding <=> $1::vector) AS similarity
		FROM equipment
		ORDER BY embedding <=> $1::vector
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, VectorLiteral(vector), maxResults)
	if err != nil {
		return result.Fail[[]Equipment](fmt.Sprintf("catalog query failed: %v", err), "")
	}
	defer rows.Close()

	var matches []Equipment
	for rows.Next() {
		var (
			e          Equipment
			needsJSON  []byte
			similarity float64
		)
		if err := rows.Scan(
			&e.ID, &e.Section, &e.Subsection, &e.Name, &e.TL, &e.Mass,
			&e.Price, &e.AmmoPrice, &e.Species, &e.Skill, &e.Book, &e.Page,
			&e.Contraband, &e.Category, &e.Law, &e.Notes, &e.Mod, &needsJSON,
			&similarity,
		); err != nil {
			return result.Fail[[]Equipment](fmt.Sprintf("catalog row scan failed: %v", err), "")
		}
		if similarity < minSimilarity {
			// Rows come back ordered by distance; everything after this one
			// is even further away.
			break
		}
		if len(needsJSON) > 0 {
			if err := json.Unmarshal(needsJSON, &e.Needs); err != nil {
				fmt.Printf("[WARNING] equipment %s has unreadable needs tags: %v\n", e.ID, err)
			}
		}
		if criteria.Matches(e) {
			matches = append(matches, e)
		}
	}
	if err := rows.Err(); err != nil {
		return result.Fail[[]Equipment](fmt.Sprintf("catalog result iteration failed: %v", err), "")
	}

	if matches == nil {
		matches = []Equipment{}
	}
	return result.OK(matches)
}

// VectorLiteral formats a float32 slice as a pgvector input literal.
func VectorLiteral(vector []float32) string {
	parts := make([]string, len(vector))
	for i, v := range vector {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
