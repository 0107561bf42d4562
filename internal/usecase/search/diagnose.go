package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/unisearch/internal/domain/score"
	"github.com/kailas-cloud/unisearch/internal/domain/search/request"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
)

// Diagnosis is a search response annotated for ranking analysis.
type Diagnosis struct {
	result.Response
	// Components holds the base score parts of Results[i] at index i.
	Components     []score.Components
	RankingVersion string
	Elapsed        time.Duration
}

// Diagnose runs the same pipeline as Search and exposes the scoring inputs.
// It is not counted in search metrics.
func (s *Service) Diagnose(ctx context.Context, req *request.Request) (Diagnosis, error) {
	start := time.Now()
	now := s.now()

	resp, err := s.search(ctx, req, now)
	d := Diagnosis{Response: resp, RankingVersion: s.scorer.Ranking().Version}
	if err != nil {
		d.Elapsed = time.Since(start)
		return d, err
	}

	d.Components = make([]score.Components, len(resp.Results))
	for i := range resp.Results {
		d.Components[i] = s.scorer.Components(resp.Results[i].Entry(), now)
	}
	d.Elapsed = time.Since(start)

	s.logger.Debug("Search diagnosed",
		zap.String("query", req.Query()),
		zap.String("sort", string(resp.Sort)),
		zap.Int("results", len(resp.Results)),
		zap.Duration("elapsed", d.Elapsed),
	)
	return d, nil
}
