package intentcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/unisearch/internal/db"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
)

type mockClassifier struct {
	in    intent.Intent
	err   error
	calls int
}

func (m *mockClassifier) Classify(_ context.Context, _ string) (intent.Intent, error) {
	m.calls++
	return m.in, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedClassifier(t *testing.T, inner *mockClassifier) (*CachedClassifier, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	return New(inner, ms, 0, nil, zap.NewNop()), ms
}
