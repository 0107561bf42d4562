package search

import (
	"context"

	"github.com/kailas-cloud/unisearch/internal/domain/keyword"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
)

// Retrieval describes one candidate lookup against the content index.
type Retrieval struct {
	RawQuery string
	Terms    []string
	Sort     mode.Mode
	Limit    int
}

// Retriever queries the unified content index.
// Hidden and soft-deleted entries must never be returned.
type Retriever interface {
	Retrieve(ctx context.Context, q Retrieval) ([]result.Candidate, error)
}

// KeywordDictionary looks up dictionary rows whose term or synonyms match
// any of the given lower-cased tokens.
type KeywordDictionary interface {
	Lookup(ctx context.Context, tokens []string) ([]keyword.Entry, error)
}

// IntentClassifier maps a free-text query to a structured intent.
type IntentClassifier interface {
	Classify(ctx context.Context, query string) (intent.Intent, error)
}
