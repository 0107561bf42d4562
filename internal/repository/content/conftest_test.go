package content

import (
	"context"
	"testing"

	"github.com/kailas-cloud/unisearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, q *db.RetrievalQuery) ([]db.ContentRow, error)
	lastQ    *db.RetrievalQuery
}

func (m *mockStore) SearchContent(ctx context.Context, q *db.RetrievalQuery) ([]db.ContentRow, error) {
	m.lastQ = q
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return []db.ContentRow{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, 0, nil), ms
}
