package db

import (
	"time"

	"github.com/google/uuid"
)

// SortKey is the primary ordering applied by the store before the
// similarity tie-breakers.
type SortKey string

// Sort keys.
const (
	SortNone      SortKey = ""
	SortViewCount SortKey = "view_count"
	SortCreatedAt SortKey = "created_at"
)

// RetrievalQuery is the typed matching predicate for content retrieval.
// A row matches when its title is trigram-similar to RawQuery (above
// FuzzyFloor) or any term is a case-insensitive substring of its title,
// description, a tag or a keyword. Hidden and soft-deleted rows never match.
type RetrievalQuery struct {
	RawQuery   string
	Terms      []string
	FuzzyFloor float64
	OrderBy    SortKey
	Limit      int
}

// ContentRow is one retrieved row of the unified content index.
type ContentRow struct {
	ID          string
	Type        string
	TargetID    string
	Link        string
	Title       string
	Description string
	Tags        []string
	Keywords    []string

	TrustGrade     string
	RelevanceGrade string
	AccuracyGrade  string

	ViewCount       int64
	LikeCount       int64
	ImpressionCount int64
	ClickCount      int64
	CommentCount    int64
	ReportCount     int64

	ContentLength    int
	ReadabilityScore float64

	CreatedAt  time.Time
	LastActive *time.Time
	Hidden     bool
	DeletedAt  *time.Time

	// FuzzyScore is 1.0 on a trigram match, otherwise the raw similarity.
	FuzzyScore float64
}

// KeywordRow is one keyword dictionary row.
type KeywordRow struct {
	Term     string
	Synonyms []string
	Category string
}

// QueryLogRow is one query log record.
type QueryLogRow struct {
	ID          uuid.UUID
	Query       string
	ResultCount int
	UserID      string
	SortMode    string
	CreatedAt   time.Time
}
