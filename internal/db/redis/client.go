// Package redis is the key-value backend of the optional intent cache.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/unisearch/internal/db"
)

var _ db.KVStore = (*Store)(nil)

// Config holds connection parameters.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
}

// Store wraps a rueidis client with the few commands the intent cache needs.
type Store struct {
	client rueidis.Client
}

// NewStore connects lazily; the first command dials.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis: at least one address is required")
	}
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: cfg.Addrs,
		Username:    cfg.Username,
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
		// Cached intents are read once per query; client-side tracking buys nothing.
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("redis: new client: %w", err)
	}
	return &Store{client: client}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Do(ctx, s.client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// HealthCheck reports cache reachability to the health aggregator.
func (s *Store) HealthCheck(ctx context.Context) error { return s.Ping(ctx) }

// Close releases the connection pool.
func (s *Store) Close() { s.client.Close() }

// Get returns the value stored at key or db.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).AsBytes()
	switch {
	case rueidis.IsRedisNil(err):
		return nil, db.ErrKeyNotFound
	case err != nil:
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// SetWithTTL stores value under key with EX expiry. Redis expiry is whole
// seconds, so ttl must be at least one second.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < time.Second {
		return &db.Error{Op: db.OpSet, Err: fmt.Errorf("ttl %s below one second", ttl)}
	}
	cmd := s.client.B().Set().Key(key).Value(rueidis.BinaryString(value)).Ex(ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}
