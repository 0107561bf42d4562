package search

import (
	"sort"

	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
)

// rank orders results in place. Ties keep retrieval order.
func rank(results []result.Scored, m mode.Mode) {
	var less func(a, b *result.Scored) bool
	switch m {
	case mode.Latest:
		less = func(a, b *result.Scored) bool {
			return a.Entry().CreatedAt().After(b.Entry().CreatedAt())
		}
	case mode.Popularity:
		less = func(a, b *result.Scored) bool {
			return a.Entry().Engagement().Views > b.Entry().Engagement().Views
		}
	default:
		less = func(a, b *result.Scored) bool {
			return a.Score() > b.Score()
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return less(&results[i], &results[j])
	})
}
