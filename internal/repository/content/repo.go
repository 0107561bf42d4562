package content

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/unisearch/internal/db"
	"github.com/kailas-cloud/unisearch/internal/domain"
	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
	"github.com/kailas-cloud/unisearch/internal/usecase/search"
)

// store is the consumer interface for content retrieval (ISP).
type store interface {
	SearchContent(ctx context.Context, q *db.RetrievalQuery) ([]db.ContentRow, error)
}

// Repo implements usecase/search.Retriever.
type Repo struct {
	store      store
	fuzzyFloor float64
	logger     *zap.Logger
}

// New creates a content repository. fuzzyFloor <= 0 selects db.DefaultFuzzyFloor.
func New(s store, fuzzyFloor float64, logger *zap.Logger) *Repo {
	if fuzzyFloor <= 0 {
		fuzzyFloor = db.DefaultFuzzyFloor
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{store: s, fuzzyFloor: fuzzyFloor, logger: logger}
}

// Retrieve fetches matching candidates in store order.
func (r *Repo) Retrieve(ctx context.Context, q search.Retrieval) ([]result.Candidate, error) {
	rq, err := db.NewRetrieval(q.RawQuery).
		Terms(q.Terms...).
		FuzzyFloor(r.fuzzyFloor).
		OrderBy(sortKey(q.Sort)).
		Limit(q.Limit).
		Build()
	if err != nil {
		return nil, fmt.Errorf("%w: build retrieval: %w", domain.ErrRetrieval, err)
	}

	rows, err := r.store.SearchContent(ctx, rq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRetrieval, err)
	}

	out := make([]result.Candidate, 0, len(rows))
	for i := range rows {
		e, err := rowToEntry(&rows[i])
		if err != nil {
			r.logger.Warn("Skipping malformed index row", zap.Error(err))
			continue
		}
		if !e.Searchable() {
			continue
		}
		out = append(out, result.NewCandidate(e, rows[i].FuzzyScore))
	}
	return out, nil
}

func sortKey(m mode.Mode) db.SortKey {
	switch m {
	case mode.Popularity:
		return db.SortViewCount
	case mode.Latest:
		return db.SortCreatedAt
	default:
		return db.SortNone
	}
}
