package result

import (
	"github.com/kailas-cloud/unisearch/internal/domain/content"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
)

// Candidate is a retrieved index entry with its title-to-query similarity.
type Candidate struct {
	entry      content.Entry
	fuzzyScore float64
}

// NewCandidate creates a retrieval candidate. fuzzyScore is clamped to [0, 1].
func NewCandidate(entry content.Entry, fuzzyScore float64) Candidate {
	switch {
	case fuzzyScore < 0 || fuzzyScore != fuzzyScore:
		fuzzyScore = 0
	case fuzzyScore > 1:
		fuzzyScore = 1
	}
	return Candidate{entry: entry, fuzzyScore: fuzzyScore}
}

// Entry returns the retrieved index entry.
func (c *Candidate) Entry() *content.Entry { return &c.entry }

// FuzzyScore returns the title similarity in [0, 1].
func (c *Candidate) FuzzyScore() float64 { return c.fuzzyScore }

// Breakdown is the decomposition of a total score into additive parts.
type Breakdown struct {
	Base           int `json:"base"`
	KeywordMatch   int `json:"keyword_match"`
	DescOrTagMatch int `json:"desc_or_tag_match"`
	IntentBonus    int `json:"intent_bonus"`
	FuzzyBonus     int `json:"fuzzy_bonus"`
}

// Total returns the sum of all parts.
func (b Breakdown) Total() int {
	return b.Base + b.KeywordMatch + b.DescOrTagMatch + b.IntentBonus + b.FuzzyBonus
}

// Scored is a search hit with its score breakdown.
type Scored struct {
	candidate Candidate
	breakdown Breakdown
}

// New creates a scored result.
func New(c Candidate, b Breakdown) Scored {
	return Scored{candidate: c, breakdown: b}
}

// Entry returns the index entry.
func (s *Scored) Entry() *content.Entry { return s.candidate.Entry() }

// Score returns the total score.
func (s *Scored) Score() int { return s.breakdown.Total() }

// Breakdown returns the per-factor score parts.
func (s *Scored) Breakdown() Breakdown { return s.breakdown }

// FuzzyScore returns the raw similarity used for the fuzzy bonus.
func (s *Scored) FuzzyScore() float64 { return s.candidate.FuzzyScore() }

// Response is the outcome of one search.
type Response struct {
	Intent      intent.Intent
	Results     []Scored
	SearchTerms []string
	Sort        mode.Mode
}
