// Package score computes the base quality score of an index entry from its
// editorial grades, popularity and recency. Pure functions, no I/O.
package score

import (
	"fmt"
	"math"
	"time"

	"github.com/kailas-cloud/unisearch/internal/domain/content"
)

// Policy holds the tunable constants of the score model.
type Policy struct {
	// GradePoints maps each grade to points; must decrease strictly from S to F.
	GradePoints map[content.Grade]float64 `yaml:"grade_points"`

	TrustWeight     float64 `yaml:"trust_weight"`
	RelevanceWeight float64 `yaml:"relevance_weight"`
	AccuracyWeight  float64 `yaml:"accuracy_weight"`

	RecencyWindow time.Duration `yaml:"recency_window"`
	RecencyBonus  float64       `yaml:"recency_bonus"`

	PopularityScale float64 `yaml:"popularity_scale"`
	PopularityCap   float64 `yaml:"popularity_cap"`
}

// DefaultPolicy returns the built-in constants.
func DefaultPolicy() Policy {
	return Policy{
		GradePoints: map[content.Grade]float64{
			content.GradeS: 100,
			content.GradeA: 70,
			content.GradeB: 40,
			content.GradeC: 15,
			content.GradeF: 0,
		},
		TrustWeight:     2.0,
		RelevanceWeight: 1.5,
		AccuracyWeight:  1.0,
		RecencyWindow:   7 * 24 * time.Hour,
		RecencyBonus:    50,
		PopularityScale: 20,
		PopularityCap:   100,
	}
}

// Validate checks the invariants the model relies on.
func (p Policy) Validate() error {
	prev := math.Inf(1)
	for _, g := range content.GradeScale {
		pts, ok := p.GradePoints[g]
		if !ok {
			return fmt.Errorf("grade_points: missing grade %s", g)
		}
		if pts < 0 {
			return fmt.Errorf("grade_points: grade %s must be non-negative", g)
		}
		if pts >= prev {
			return fmt.Errorf("grade_points: grade %s must score below the grade above it", g)
		}
		prev = pts
	}
	if p.AccuracyWeight <= 0 {
		return fmt.Errorf("weights must be positive")
	}
	if !(p.TrustWeight > p.RelevanceWeight && p.RelevanceWeight > p.AccuracyWeight) {
		return fmt.Errorf("weights must satisfy trust > relevance > accuracy")
	}
	if p.RecencyWindow < 0 || p.RecencyBonus < 0 {
		return fmt.Errorf("recency window and bonus must be non-negative")
	}
	if p.PopularityScale < 0 || p.PopularityCap < 0 {
		return fmt.Errorf("popularity scale and cap must be non-negative")
	}
	return nil
}

// Components is the decomposition of a base score.
type Components struct {
	Trust      float64 `json:"trust"`
	Relevance  float64 `json:"relevance"`
	Accuracy   float64 `json:"accuracy"`
	Recency    float64 `json:"recency"`
	Popularity float64 `json:"popularity"`
}

// Sum returns the unrounded base score.
func (c Components) Sum() float64 {
	return c.Trust + c.Relevance + c.Accuracy + c.Recency + c.Popularity
}

// Model computes base scores under a Policy.
type Model struct {
	policy Policy
}

// NewModel creates a score model.
func NewModel(p Policy) *Model {
	return &Model{policy: p}
}

// Policy returns the model constants.
func (m *Model) Policy() Policy { return m.policy }

// Base returns the base quality score of e evaluated at now.
func (m *Model) Base(e *content.Entry, now time.Time) int {
	s := m.Components(e, now).Sum()
	if s < 0 || math.IsNaN(s) {
		return 0
	}
	return int(math.Floor(s))
}

// Components returns the weighted parts of the base score.
func (m *Model) Components(e *content.Entry, now time.Time) Components {
	g := e.Grades()
	return Components{
		Trust:      m.gradePoints(g.Trust) * m.policy.TrustWeight,
		Relevance:  m.gradePoints(g.Relevance) * m.policy.RelevanceWeight,
		Accuracy:   m.gradePoints(g.Accuracy) * m.policy.AccuracyWeight,
		Recency:    m.Recency(e.CreatedAt(), now),
		Popularity: m.Popularity(e.Engagement().Views),
	}
}

// Recency returns the flat bonus when createdAt lies within the window
// ending at now (inclusive), otherwise 0.
func (m *Model) Recency(createdAt, now time.Time) float64 {
	if createdAt.IsZero() {
		return 0
	}
	age := now.Sub(createdAt)
	if age <= m.policy.RecencyWindow {
		return m.policy.RecencyBonus
	}
	return 0
}

// Popularity returns min(log10(max(views,1)) * scale, cap).
func (m *Model) Popularity(views int64) float64 {
	if views < 1 {
		views = 1
	}
	return math.Min(math.Log10(float64(views))*m.policy.PopularityScale, m.policy.PopularityCap)
}

func (m *Model) gradePoints(g content.Grade) float64 {
	if pts, ok := m.policy.GradePoints[g]; ok {
		return pts
	}
	return m.policy.GradePoints[content.DefaultGrade]
}
