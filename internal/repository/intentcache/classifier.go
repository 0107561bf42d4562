package intentcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/unisearch/internal/db"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
)

const cacheKeyPrefix = "unisearch:intent:"

// DefaultTTL is how long a classification stays cached.
const DefaultTTL = 10 * time.Minute

// store is the consumer interface for the intent cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// classifier is the wrapped classifier contract.
type classifier interface {
	Classify(ctx context.Context, query string) (intent.Intent, error)
}

// CachedClassifier caches intent classifications in a key-value store.
// Cache failures are logged and bypassed; they never fail a search.
type CachedClassifier struct {
	inner      classifier
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner classifier,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedClassifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClassifier{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Classify returns a cached intent or calls the inner classifier.
// Errors from the inner classifier are not cached.
func (c *CachedClassifier) Classify(ctx context.Context, query string) (intent.Intent, error) {
	key := cacheKey(query)

	if in, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return in, nil
	}
	c.incCache("miss")

	in, err := c.inner.Classify(ctx, query)
	if err != nil {
		return intent.Intent{}, fmt.Errorf("classify query: %w", err)
	}

	c.putToCache(ctx, key, in)
	return in, nil
}

// HealthCheck forwards to the inner classifier when it supports probing.
func (c *CachedClassifier) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(interface{ HealthCheck(context.Context) error }); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

func (c *CachedClassifier) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the case- and whitespace-normalized query.
func cacheKey(query string) string {
	norm := strings.ToLower(strings.Join(strings.Fields(query), " "))
	h := sha256.Sum256([]byte(norm))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedClassifier) getFromCache(ctx context.Context, key string) (intent.Intent, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached intent", zap.String("key", key), zap.Error(err))
		}
		return intent.Intent{}, false
	}
	if len(data) == 0 {
		return intent.Intent{}, false
	}

	var in intent.Intent
	if err := json.Unmarshal(data, &in); err != nil {
		c.logger.Warn("Failed to parse cached intent", zap.String("key", key), zap.Error(err))
		return intent.Intent{}, false
	}
	return in.Normalize(), true
}

func (c *CachedClassifier) putToCache(ctx context.Context, key string, in intent.Intent) {
	data, err := json.Marshal(in)
	if err != nil {
		c.logger.Warn("Failed to encode intent for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache intent", zap.String("key", key), zap.Error(err))
	}
}
