package request

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/unisearch/internal/domain"
	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in runes.
	MaxQueryLength = 200
	DefaultLimit   = 20
	MaxLimit       = 50
)

// Request is a validated search query.
type Request struct {
	query    string
	sortMode mode.Mode
	limit    int
	userID   string
}

// New validates and normalizes search parameters.
// sortMode may be mode.Unset; limit <= 0 selects DefaultLimit and values
// above MaxLimit are clamped.
func New(query string, sortMode mode.Mode, limit int) (Request, error) {
	query = strings.Join(strings.Fields(query), " ")
	if query == "" {
		return Request{}, domain.NewValidationError("q", "is required")
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, domain.NewValidationError("q", "is too long")
	}
	if sortMode != mode.Unset && !sortMode.IsValid() {
		return Request{}, domain.ErrInvalidSortMode
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{query: query, sortMode: sortMode, limit: limit}, nil
}

// WithUserID returns a copy carrying the caller's user id for query logging.
func (r Request) WithUserID(userID string) Request {
	r.userID = userID
	return r
}

// Query returns the whitespace-normalized query text.
func (r *Request) Query() string { return r.query }

// Sort returns the explicitly requested sort mode (may be unset).
func (r *Request) Sort() mode.Mode { return r.sortMode }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// UserID returns the caller's user id, empty for anonymous searches.
func (r *Request) UserID() string { return r.userID }
