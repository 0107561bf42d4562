package unisearch

import (
	"context"
	"time"

	"github.com/kailas-cloud/unisearch/internal/domain/content"
	"github.com/kailas-cloud/unisearch/internal/domain/search/request"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/unisearch/internal/usecase/search"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn   func(ctx context.Context, req *request.Request) (result.Response, error)
	diagnoseFn func(ctx context.Context, req *request.Request) (searchuc.Diagnosis, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (result.Response, error) {
	return m.searchFn(ctx, req)
}

func (m *mockSearchUC) Diagnose(ctx context.Context, req *request.Request) (searchuc.Diagnosis, error) {
	return m.diagnoseFn(ctx, req)
}

// --- store mock ---

type mockStore struct {
	pingErr error
	closed  bool
}

func (m *mockStore) Ping(context.Context) error { return m.pingErr }
func (m *mockStore) Close()                     { m.closed = true }

// --- IntentClassifier mock ---

type mockClassifier struct {
	fn func(ctx context.Context, query string) (Intent, error)
}

func (m *mockClassifier) Classify(ctx context.Context, query string) (Intent, error) {
	return m.fn(ctx, query)
}

func wikiResult() result.Scored {
	e := content.Reconstruct(content.Fields{
		ID:         "c-7",
		Ref:        content.WikiRef{WikiID: "w-3"},
		Title:      "셰이더 설치 가이드",
		Tags:       []string{"shader"},
		Grades:     content.Grades{Trust: content.GradeA, Relevance: content.GradeA, Accuracy: content.GradeS},
		Engagement: content.Engagement{Views: 42, Likes: 5, Impressions: 300, Clicks: 21, Comments: 4, Reports: 1},
		Quality:    content.Quality{ContentLength: 1800, ReadabilityScore: 0.72},
		CreatedAt:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		LastActive: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
	})
	return result.New(result.NewCandidate(e, 0.45), result.Breakdown{
		Base: 345, KeywordMatch: 100, DescOrTagMatch: 50, IntentBonus: 100, FuzzyBonus: 135,
	})
}
