package search

import (
	"testing"
	"time"

	"github.com/kailas-cloud/unisearch/internal/domain/content"
	"github.com/kailas-cloud/unisearch/internal/domain/score"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/domain/search/policy"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
)

func newScorer() *Scorer {
	return NewScorer(score.NewModel(score.DefaultPolicy()), policy.Default())
}

func plainEntry(t *testing.T, ref content.Ref, title, desc string, tags []string) content.Entry {
	t.Helper()
	e, err := content.New(content.Fields{ID: "e", Ref: ref, Title: title, Description: desc, Tags: tags})
	if err != nil {
		t.Fatalf("content.New: %v", err)
	}
	return e
}

func TestScore_FuzzyBonus(t *testing.T) {
	s := newScorer()
	e := plainEntry(t, content.PostRef{PostID: "p"}, "Alpha", "", nil)
	now := time.Now()

	tests := []struct {
		fuzzy float64
		want  int
	}{
		{0.9, 270},
		{0.2, 0},
		{0.3, 0},
		{0.5, 150},
		{1.0, 300},
	}
	for _, tc := range tests {
		got := s.Score(result.NewCandidate(e, tc.fuzzy), []string{"zzz"}, intent.Fallback(), now)
		if got.Breakdown().FuzzyBonus != tc.want {
			t.Errorf("fuzzy %v: bonus = %d, want %d", tc.fuzzy, got.Breakdown().FuzzyBonus, tc.want)
		}
	}
}

func TestScore_TotalIsSumOfParts(t *testing.T) {
	s := newScorer()
	e := plainEntry(t, content.PostRef{PostID: "p"}, "Alpha", "", nil)
	got := s.Score(result.NewCandidate(e, 0.9), []string{"zzz"}, intent.Fallback(), time.Now())
	if got.Score() != 450 {
		t.Errorf("Score() = %d, want 450", got.Score())
	}
	if got.Score() != got.Breakdown().Total() {
		t.Error("score does not equal breakdown total")
	}
}

func TestScore_TermMatches(t *testing.T) {
	s := newScorer()
	now := time.Now()

	tests := []struct {
		name        string
		title, desc string
		tags        []string
		terms       []string
		wantTitle   int
		wantDescTag int
	}{
		{"title only", "Best SURVIVAL server", "", nil, []string{"survival"}, 100, 0},
		{"description", "Lobby", "a survival world", nil, []string{"survival"}, 0, 50},
		{"tag", "Lobby", "", []string{"survival-mode"}, []string{"survival"}, 0, 50},
		{"both", "Survival", "survival", nil, []string{"survival"}, 100, 50},
		{"none", "Lobby", "hub", []string{"pvp"}, []string{"survival"}, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := plainEntry(t, content.ServerRef{ServerID: "s"}, tc.title, tc.desc, tc.tags)
			sc := s.Score(result.NewCandidate(e, 0), tc.terms, intent.Fallback(), now)
			b := sc.Breakdown()
			if b.KeywordMatch != tc.wantTitle {
				t.Errorf("keyword match = %d, want %d", b.KeywordMatch, tc.wantTitle)
			}
			if b.DescOrTagMatch != tc.wantDescTag {
				t.Errorf("desc/tag match = %d, want %d", b.DescOrTagMatch, tc.wantDescTag)
			}
		})
	}
}

func TestScore_IntentBonus(t *testing.T) {
	s := newScorer()
	now := time.Now()

	tests := []struct {
		name string
		ref  content.Ref
		tags []string
		in   intent.Intent
		want int
	}{
		{"navigation to server", content.ServerRef{ServerID: "s"}, nil, intent.Intent{Category: intent.Navigation}, 200},
		{"server to server", content.ServerRef{ServerID: "s"}, nil, intent.Intent{Category: intent.Server}, 200},
		{"guide to wiki", content.WikiRef{WikiID: "w"}, nil, intent.Intent{Category: intent.Guide}, 100},
		{"resource to resource", content.ResourceRef{ResourceID: "r"}, nil, intent.Intent{Category: intent.Resource}, 100},
		{"server intent on wiki", content.WikiRef{WikiID: "w"}, nil, intent.Intent{Category: intent.Server}, 0},
		{"sub-category tag", content.ResourceRef{ResourceID: "r"}, []string{"모드팩"},
			intent.Intent{Category: intent.Resource, SubCategory: "MODS"}, 250},
		{"sub-category without category", content.PostRef{PostID: "p"}, []string{"뉴스"},
			intent.Intent{Category: intent.General, SubCategory: "NEWS"}, 150},
		{"sub-category miss", content.ResourceRef{ResourceID: "r"}, []string{"shader"},
			intent.Intent{Category: intent.Resource, SubCategory: "MAPS"}, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := plainEntry(t, tc.ref, "title", "", tc.tags)
			sc := s.Score(result.NewCandidate(e, 0), nil, tc.in, now)
			b := sc.Breakdown()
			if b.IntentBonus != tc.want {
				t.Errorf("intent bonus = %d, want %d", b.IntentBonus, tc.want)
			}
		})
	}
}

func TestScoreAll_PreservesOrder(t *testing.T) {
	s := newScorer()
	a := plainEntry(t, content.PostRef{PostID: "a"}, "a", "", nil)
	b := plainEntry(t, content.PostRef{PostID: "b"}, "b", "", nil)
	out := s.ScoreAll([]result.Candidate{result.NewCandidate(a, 0), result.NewCandidate(b, 0)}, nil, intent.Fallback(), time.Now())
	if len(out) != 2 || out[0].Entry().Ref().TargetID() != "a" {
		t.Errorf("unexpected output %v", out)
	}
	if empty := s.ScoreAll(nil, nil, intent.Fallback(), time.Now()); empty == nil {
		t.Error("expected non-nil slice for no candidates")
	}
}
