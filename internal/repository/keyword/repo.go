package keyword

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/unisearch/internal/db"
	"github.com/kailas-cloud/unisearch/internal/domain"
	domkw "github.com/kailas-cloud/unisearch/internal/domain/keyword"
)

// store is the consumer interface for dictionary reads (ISP).
type store interface {
	LookupKeywords(ctx context.Context, tokens []string) ([]db.KeywordRow, error)
}

// Repo implements usecase/search.KeywordDictionary.
type Repo struct {
	store store
}

// New creates a keyword dictionary repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Lookup returns the dictionary entries matching any token.
func (r *Repo) Lookup(ctx context.Context, tokens []string) ([]domkw.Entry, error) {
	rows, err := r.store.LookupKeywords(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrKeywordLookup, err)
	}
	out := make([]domkw.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domkw.New(row.Term, row.Synonyms, row.Category))
	}
	return out, nil
}
