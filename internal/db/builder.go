package db

import (
	"fmt"
	"strings"
)

// Retrieval defaults.
const (
	DefaultFuzzyFloor = 0.1
	DefaultLimit      = 50
)

// RetrievalBuilder is a fluent builder for RetrievalQuery.
type RetrievalBuilder struct {
	q RetrievalQuery
}

// NewRetrieval starts building a retrieval for rawQuery.
func NewRetrieval(rawQuery string) *RetrievalBuilder {
	return &RetrievalBuilder{
		q: RetrievalQuery{
			RawQuery:   rawQuery,
			FuzzyFloor: DefaultFuzzyFloor,
			Limit:      DefaultLimit,
		},
	}
}

// Terms adds substring match terms. Blank terms and case-insensitive
// duplicates are skipped.
func (b *RetrievalBuilder) Terms(terms ...string) *RetrievalBuilder {
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" || b.hasTerm(t) {
			continue
		}
		b.q.Terms = append(b.q.Terms, t)
	}
	return b
}

func (b *RetrievalBuilder) hasTerm(t string) bool {
	for _, existing := range b.q.Terms {
		if strings.EqualFold(existing, t) {
			return true
		}
	}
	return false
}

// FuzzyFloor sets the minimum title similarity for a fuzzy match.
func (b *RetrievalBuilder) FuzzyFloor(f float64) *RetrievalBuilder {
	b.q.FuzzyFloor = f
	return b
}

// OrderBy sets the primary sort key.
func (b *RetrievalBuilder) OrderBy(k SortKey) *RetrievalBuilder {
	b.q.OrderBy = k
	return b
}

// Limit caps the number of rows returned.
func (b *RetrievalBuilder) Limit(n int) *RetrievalBuilder {
	b.q.Limit = n
	return b
}

// Build validates and returns the query.
func (b *RetrievalBuilder) Build() (*RetrievalQuery, error) {
	if err := b.q.Validate(); err != nil {
		return nil, err
	}
	q := b.q
	q.Terms = append([]string(nil), b.q.Terms...)
	return &q, nil
}

// MustBuild calls Build and panics on error.
func (b *RetrievalBuilder) MustBuild() *RetrievalQuery {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}

// Validate checks the query is executable.
func (q *RetrievalQuery) Validate() error {
	if strings.TrimSpace(q.RawQuery) == "" {
		return fmt.Errorf("%w: raw query is required", ErrInvalidQuery)
	}
	if q.FuzzyFloor < 0 || q.FuzzyFloor > 1 {
		return fmt.Errorf("%w: fuzzy floor must be between 0 and 1, got %v", ErrInvalidQuery, q.FuzzyFloor)
	}
	if q.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidQuery, q.Limit)
	}
	switch q.OrderBy {
	case SortNone, SortViewCount, SortCreatedAt:
	default:
		return fmt.Errorf("%w: unknown sort key %q", ErrInvalidQuery, q.OrderBy)
	}
	return nil
}

// Patterns returns the terms as escaped ILIKE substring patterns.
func (q *RetrievalQuery) Patterns() []string {
	out := make([]string, 0, len(q.Terms))
	for _, t := range q.Terms {
		out = append(out, "%"+EscapeLike(t)+"%")
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// String returns a debug representation of the query.
func (q *RetrievalQuery) String() string {
	parts := []string{"RETRIEVE", fmt.Sprintf("%q", q.RawQuery)}
	if len(q.Terms) > 0 {
		parts = append(parts, "TERMS", strings.Join(q.Terms, "|"))
	}
	parts = append(parts, "FLOOR", fmt.Sprintf("%g", q.FuzzyFloor))
	if q.OrderBy != SortNone {
		parts = append(parts, "ORDER", string(q.OrderBy))
	}
	parts = append(parts, "LIMIT", fmt.Sprintf("%d", q.Limit))
	return strings.Join(parts, " ")
}
