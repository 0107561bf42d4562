package db

import (
	"context"
	"time"
)

// Store is the relational facade combining all sub-interfaces.
// Consumers depend on the narrow interfaces below.
type Store interface {
	Pinger
	ContentSearcher
	KeywordStore
	QueryLogWriter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ContentSearcher runs candidate retrieval over the unified content index.
type ContentSearcher interface {
	SearchContent(ctx context.Context, q *RetrievalQuery) ([]ContentRow, error)
}

// KeywordStore reads the keyword dictionary.
type KeywordStore interface {
	LookupKeywords(ctx context.Context, tokens []string) ([]KeywordRow, error)
}

// QueryLogWriter appends query log rows.
type QueryLogWriter interface {
	InsertQueryLog(ctx context.Context, row *QueryLogRow) error
}

// KVStore provides simple key-value operations with expiry.
type KVStore interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
