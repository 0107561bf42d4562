package unisearch

import "github.com/kailas-cloud/unisearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery    = domain.ErrInvalidQuery
	ErrInvalidSortMode = domain.ErrInvalidSortMode
	// ErrRetrieval means the index could not be queried. An empty result
	// set is not an error.
	ErrRetrieval = domain.ErrRetrieval
)
