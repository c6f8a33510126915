package kb

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/bonnetkb/bonnet/errors"
)

const searchQuery = `
	SELECT e.id, e.name, e.created_at
	FROM entities e
	WHERE e.id IN (SELECT entity_id FROM entity_search WHERE entity_search MATCH ?)
	ORDER BY e.created_at ASC, e.id ASC
	LIMIT ?`

// defaultSearchLimit is applied when the caller passes limit <= 0.
// This is a cap, not "unlimited"; callers that want fewer results pass a
// positive limit explicitly.
const defaultSearchLimit = 25

// SearchEntities runs a full-text search over entity names and attribute
// subject/value text, returning matching entities. Ties are ordered by
// creation time ascending, then identifier ascending, so results are
// deterministic and reproducible.
func (s *SQLStore) SearchEntities(query string, limit int) ([]Candidate, error) {
	match := buildMatchExpression(query)
	if match == "" {
		return nil, errors.New("empty search query")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if s.logger != nil {
		s.logger.Debugw("Searching entities", "query", query, "match", match, "limit", limit)
	}

	rows, err := s.db.Query(searchQuery, match, limit)
	if err != nil {
		return nil, storeError(err, "search entities")
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &createdAt); err != nil {
			return nil, errors.Wrap(err, "scan candidate")
		}
		if c.CreatedAt, err = parseStoredTime(createdAt); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// buildMatchExpression converts a user query into an FTS5 MATCH expression.
// Tokens are split respecting quoted phrases, then each becomes a quoted
// prefix term so "Shark" also matches "Sharks". Internal quotes are doubled
// per FTS5 string syntax.
func buildMatchExpression(query string) string {
	tokens, err := shellquote.Split(query)
	if err != nil {
		// Unbalanced quotes: fall back to whitespace splitting
		tokens = strings.Fields(query)
	}

	terms := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		escaped := strings.ReplaceAll(token, `"`, `""`)
		terms = append(terms, `"`+escaped+`"*`)
	}
	return strings.Join(terms, " ")
}
