package unisearch

import (
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/unisearch/internal/usecase/search"
)

func intentFromDomain(in intent.Intent) Intent {
	return Intent{
		Category:    string(in.Category),
		SubCategory: in.SubCategory,
		Explanation: in.Explanation,
		Keywords:    in.Keywords,
		Tags:        in.Filters.Tags,
		Sort:        SortMode(in.Sort),
	}
}

func intentToDomain(in Intent) intent.Intent {
	return intent.Intent{
		Category:    intent.ParseCategory(in.Category),
		SubCategory: in.SubCategory,
		Explanation: in.Explanation,
		Keywords:    in.Keywords,
		Filters:     intent.Filters{Tags: in.Tags},
		Sort:        mode.Mode(in.Sort),
	}
}

func resultFromDomain(r *result.Scored) Result {
	e := r.Entry()
	g := e.Grades()
	eng := e.Engagement()
	q := e.Quality()
	b := r.Breakdown()
	return Result{
		ID:          e.ID(),
		Type:        string(e.Kind()),
		TargetID:    e.Ref().TargetID(),
		Link:        e.Link(),
		Title:       e.Title(),
		Description: e.Description(),
		Tags:        e.Tags(),
		Keywords:    e.Keywords(),
		Grades: Grades{
			Trust:     string(g.Trust),
			Relevance: string(g.Relevance),
			Accuracy:  string(g.Accuracy),
		},
		Views:            eng.Views,
		Likes:            eng.Likes,
		Impressions:      eng.Impressions,
		Clicks:           eng.Clicks,
		Comments:         eng.Comments,
		Reports:          eng.Reports,
		ContentLength:    q.ContentLength,
		ReadabilityScore: q.ReadabilityScore,
		CreatedAt:        e.CreatedAt(),
		LastActive:       e.LastActive(),
		Score:            r.Score(),
		Breakdown: ScoreBreakdown{
			Base:           b.Base,
			KeywordMatch:   b.KeywordMatch,
			DescOrTagMatch: b.DescOrTagMatch,
			IntentBonus:    b.IntentBonus,
			FuzzyBonus:     b.FuzzyBonus,
		},
		FuzzyScore: r.FuzzyScore(),
	}
}

func responseFromDomain(resp result.Response) Response {
	out := Response{
		Intent:      intentFromDomain(resp.Intent),
		Results:     make([]Result, len(resp.Results)),
		SearchTerms: resp.SearchTerms,
		Sort:        SortMode(resp.Sort),
	}
	for i := range resp.Results {
		out.Results[i] = resultFromDomain(&resp.Results[i])
	}
	return out
}

func diagnosisFromDomain(d searchuc.Diagnosis) Diagnosis {
	out := Diagnosis{
		Intent:         intentFromDomain(d.Intent),
		Results:        make([]DiagnosticResult, len(d.Results)),
		SearchTerms:    d.SearchTerms,
		Sort:           SortMode(d.Sort),
		RankingVersion: d.RankingVersion,
		Elapsed:        d.Elapsed,
	}
	for i := range d.Results {
		out.Results[i].Result = resultFromDomain(&d.Results[i])
		if i < len(d.Components) {
			c := d.Components[i]
			out.Results[i].Components = ScoreComponents(c)
		}
	}
	return out
}
