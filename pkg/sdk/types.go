package unisearch

import "time"

// SortMode selects result ordering.
type SortMode string

// Sort mode constants. SortDefault lets the classifier suggest an ordering.
const (
	SortDefault    SortMode = ""
	SortRelevance  SortMode = "RELEVANCE"
	SortPopularity SortMode = "POPULARITY"
	SortLatest     SortMode = "LATEST"
)

// Intent is the classification of a query.
type Intent struct {
	Category    string
	SubCategory string
	Explanation string
	Keywords    []string
	Tags        []string
	Sort        SortMode
}

// Grades holds the editorial ratings of an entry (S, A, B, C or F).
type Grades struct {
	Trust     string
	Relevance string
	Accuracy  string
}

// ScoreBreakdown decomposes Result.Score into additive parts.
type ScoreBreakdown struct {
	Base           int
	KeywordMatch   int
	DescOrTagMatch int
	IntentBonus    int
	FuzzyBonus     int
}

// Result is one ranked hit.
type Result struct {
	ID          string
	Type        string // SERVER, RESOURCE, WIKI, POST or COLLECTION
	TargetID    string
	Link        string
	Title       string
	Description string
	Tags        []string
	Keywords    []string
	Grades      Grades
	Views       int64
	Likes       int64
	Impressions int64
	Clicks      int64
	Comments    int64
	Reports     int64

	ContentLength    int
	ReadabilityScore float64

	CreatedAt  time.Time
	LastActive time.Time // zero when unknown

	Score      int
	Breakdown  ScoreBreakdown
	FuzzyScore float64
}

// Response is the outcome of a search.
type Response struct {
	Intent      Intent
	Results     []Result
	SearchTerms []string
	Sort        SortMode
}

// ScoreComponents are the weighted parts of a base score.
type ScoreComponents struct {
	Trust      float64
	Relevance  float64
	Accuracy   float64
	Recency    float64
	Popularity float64
}

// DiagnosticResult adds the base score parts to a hit.
type DiagnosticResult struct {
	Result
	Components ScoreComponents
}

// Diagnosis is a search response annotated for ranking analysis.
type Diagnosis struct {
	Intent         Intent
	Results        []DiagnosticResult
	SearchTerms    []string
	Sort           SortMode
	RankingVersion string
	Elapsed        time.Duration
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
