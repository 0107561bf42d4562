package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/kailas-cloud/unisearch/internal/db"
)

// Tokens are compared lower-cased against the term and every synonym.
const lookupKeywordsSQL = `SELECT term, synonyms, category
FROM search_keywords
WHERE lower(term) = ANY($1)
   OR EXISTS (SELECT 1 FROM unnest(synonyms) AS s(syn) WHERE lower(s.syn) = ANY($1))
ORDER BY id`

// LookupKeywords returns dictionary rows whose term or synonyms equal any
// of the lower-cased tokens.
func (s *Store) LookupKeywords(ctx context.Context, tokens []string) ([]db.KeywordRow, error) {
	if len(tokens) == 0 {
		return []db.KeywordRow{}, nil
	}

	rows, err := s.pool.Query(ctx, lookupKeywordsSQL, tokens)
	if err != nil {
		return nil, &db.Error{Op: db.OpLookupKeywords, Err: err}
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.KeywordRow, error) {
		var r db.KeywordRow
		err := row.Scan(&r.Term, &r.Synonyms, &r.Category)
		return r, err
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpLookupKeywords, Err: err}
	}
	if out == nil {
		out = []db.KeywordRow{}
	}
	return out, nil
}
