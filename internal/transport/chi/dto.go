package chi

import (
	"time"

	"github.com/kailas-cloud/unisearch/internal/domain/score"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/unisearch/internal/usecase/search"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeInvalidQuery     = "invalid_query"
	codeInvalidSort      = "invalid_sort_mode"
	codeUnauthorized     = "unauthorized"
	codeIndexUnavailable = "index_unavailable"
	codeInternalError    = "internal_error"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// GradesDTO carries the editorial ratings of a result.
type GradesDTO struct {
	Trust     string `json:"trust"`
	Relevance string `json:"relevance"`
	Accuracy  string `json:"accuracy"`
}

// ResultDTO is one ranked search hit.
type ResultDTO struct {
	ID             string           `json:"id"`
	Type           string           `json:"type"`
	TargetID       string           `json:"target_id"`
	Link           string           `json:"link,omitempty"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Tags           []string         `json:"tags"`
	Keywords       []string         `json:"keywords"`
	Grades         GradesDTO        `json:"grades"`
	ViewCount      int64            `json:"view_count"`
	LikeCount      int64            `json:"like_count"`
	Impressions    int64            `json:"impressions"`
	Clicks         int64            `json:"clicks"`
	CommentCount   int64            `json:"comment_count"`
	ReportCount    int64            `json:"report_count"`
	ContentLength  int              `json:"content_length"`
	Readability    float64          `json:"readability_score"`
	CreatedAt      time.Time        `json:"created_at"`
	LastActive     *time.Time       `json:"last_active,omitempty"`
	Score          int              `json:"score"`
	ScoreBreakdown result.Breakdown `json:"score_breakdown"`
}

// SearchResponse is the body of GET /api/v1/search.
type SearchResponse struct {
	Intent      intent.Intent `json:"intent"`
	Results     []ResultDTO   `json:"results"`
	SearchTerms []string      `json:"search_terms"`
	Sort        string        `json:"sort"`
}

// DiagnosticResultDTO adds the scoring inputs to a hit.
type DiagnosticResultDTO struct {
	ResultDTO
	FuzzyScore float64          `json:"fuzzy_score"`
	FuzzyBonus int              `json:"fuzzy_bonus"`
	Components score.Components `json:"score_components"`
}

// DiagnosticsResponse is the body of GET /api/v1/admin/search/diagnostics.
type DiagnosticsResponse struct {
	Intent         intent.Intent         `json:"intent"`
	Results        []DiagnosticResultDTO `json:"results"`
	SearchTerms    []string              `json:"search_terms"`
	Sort           string                `json:"sort"`
	RankingVersion string                `json:"ranking_version"`
	ElapsedMS      float64               `json:"elapsed_ms"`
}

func resultToDTO(r *result.Scored) ResultDTO {
	e := r.Entry()
	g := e.Grades()
	eng := e.Engagement()
	q := e.Quality()
	dto := ResultDTO{
		ID:          e.ID(),
		Type:        string(e.Kind()),
		TargetID:    e.Ref().TargetID(),
		Link:        e.Link(),
		Title:       e.Title(),
		Description: e.Description(),
		Tags:        nonNil(e.Tags()),
		Keywords:    nonNil(e.Keywords()),
		Grades: GradesDTO{
			Trust:     string(g.Trust),
			Relevance: string(g.Relevance),
			Accuracy:  string(g.Accuracy),
		},
		ViewCount:      eng.Views,
		LikeCount:      eng.Likes,
		Impressions:    eng.Impressions,
		Clicks:         eng.Clicks,
		CommentCount:   eng.Comments,
		ReportCount:    eng.Reports,
		ContentLength:  q.ContentLength,
		Readability:    q.ReadabilityScore,
		CreatedAt:      e.CreatedAt().UTC(),
		Score:          r.Score(),
		ScoreBreakdown: r.Breakdown(),
	}
	if la := e.LastActive(); !la.IsZero() {
		la = la.UTC()
		dto.LastActive = &la
	}
	return dto
}

func responseToDTO(resp result.Response) SearchResponse {
	items := make([]ResultDTO, len(resp.Results))
	for i := range resp.Results {
		items[i] = resultToDTO(&resp.Results[i])
	}
	return SearchResponse{
		Intent:      resp.Intent,
		Results:     items,
		SearchTerms: nonNil(resp.SearchTerms),
		Sort:        string(resp.Sort),
	}
}

// NewDiagnosticsResponse renders a diagnosis in its JSON shape.
func NewDiagnosticsResponse(d searchuc.Diagnosis) DiagnosticsResponse {
	items := make([]DiagnosticResultDTO, len(d.Results))
	for i := range d.Results {
		r := &d.Results[i]
		items[i] = DiagnosticResultDTO{
			ResultDTO:  resultToDTO(r),
			FuzzyScore: r.FuzzyScore(),
			FuzzyBonus: r.Breakdown().FuzzyBonus,
		}
		if i < len(d.Components) {
			items[i].Components = d.Components[i]
		}
	}
	return DiagnosticsResponse{
		Intent:         d.Intent,
		Results:        items,
		SearchTerms:    nonNil(d.SearchTerms),
		Sort:           string(d.Sort),
		RankingVersion: d.RankingVersion,
		ElapsedMS:      float64(d.Elapsed.Microseconds()) / 1000,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
