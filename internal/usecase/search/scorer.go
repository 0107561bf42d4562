package search

import (
	"math"
	"strings"
	"time"

	"github.com/kailas-cloud/unisearch/internal/domain/content"
	"github.com/kailas-cloud/unisearch/internal/domain/score"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/domain/search/policy"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
)

// Scorer turns retrieval candidates into scored results.
// All bonuses are additive and independent of each other.
type Scorer struct {
	model   *score.Model
	ranking policy.Ranking
}

// NewScorer creates a scorer over a base score model and ranking tables.
func NewScorer(model *score.Model, ranking policy.Ranking) *Scorer {
	return &Scorer{model: model, ranking: ranking}
}

// Ranking returns the ranking tables in use.
func (s *Scorer) Ranking() policy.Ranking { return s.ranking }

// Components returns the base score parts of e evaluated at now.
func (s *Scorer) Components(e *content.Entry, now time.Time) score.Components {
	return s.model.Components(e, now)
}

// Score computes the breakdown for one candidate.
func (s *Scorer) Score(c result.Candidate, terms []string, in intent.Intent, now time.Time) result.Scored {
	e := c.Entry()
	lowered := lowerAll(terms)

	b := result.Breakdown{Base: s.model.Base(e, now)}
	if containsAnyTerm(e.Title(), lowered) {
		b.KeywordMatch = s.ranking.KeywordMatchBonus
	}
	if descOrTagMatch(e, lowered) {
		b.DescOrTagMatch = s.ranking.DescOrTagBonus
	}
	b.IntentBonus = s.intentBonus(e, in)
	b.FuzzyBonus = s.fuzzyBonus(c.FuzzyScore())

	return result.New(c, b)
}

// ScoreAll scores every candidate against the same clock reading.
func (s *Scorer) ScoreAll(cands []result.Candidate, terms []string, in intent.Intent, now time.Time) []result.Scored {
	out := make([]result.Scored, 0, len(cands))
	for _, c := range cands {
		out = append(out, s.Score(c, terms, in, now))
	}
	return out
}

func (s *Scorer) intentBonus(e *content.Entry, in intent.Intent) int {
	bonus := s.ranking.CategoryBonusFor(in.Category, e.Kind())
	if s.ranking.SubCategoryMatches(in.SubCategory, e.Tags()) {
		bonus += s.ranking.SubCategoryBonus
	}
	return bonus
}

func (s *Scorer) fuzzyBonus(f float64) int {
	if f <= s.ranking.FuzzyThreshold {
		return 0
	}
	return int(math.Floor(f * s.ranking.FuzzyScale))
}

func descOrTagMatch(e *content.Entry, lowered []string) bool {
	if containsAnyTerm(e.Description(), lowered) {
		return true
	}
	for _, tag := range e.Tags() {
		if containsAnyTerm(tag, lowered) {
			return true
		}
	}
	return false
}

// containsAnyTerm reports whether s contains any of the lower-cased terms.
func containsAnyTerm(s string, lowered []string) bool {
	if s == "" {
		return false
	}
	ls := strings.ToLower(s)
	for _, t := range lowered {
		if t != "" && strings.Contains(ls, t) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
