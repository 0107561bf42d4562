package querylog

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/unisearch/internal/db"
	usecase "github.com/kailas-cloud/unisearch/internal/usecase/querylog"
)

// store is the consumer interface for query log writes (ISP).
type store interface {
	InsertQueryLog(ctx context.Context, row *db.QueryLogRow) error
}

// Repo implements usecase/querylog.Sink.
type Repo struct {
	store store
}

// New creates a query log repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Write persists one event.
func (r *Repo) Write(ctx context.Context, e usecase.Event) error {
	row := &db.QueryLogRow{
		ID:          e.ID,
		Query:       e.Query,
		ResultCount: e.ResultCount,
		UserID:      e.UserID,
		SortMode:    string(e.Sort),
		CreatedAt:   e.At,
	}
	if err := r.store.InsertQueryLog(ctx, row); err != nil {
		return fmt.Errorf("insert query log %s: %w", e.ID, err)
	}
	return nil
}
