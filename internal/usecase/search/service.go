package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/unisearch/internal/domain"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
	"github.com/kailas-cloud/unisearch/internal/domain/search/request"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
	"github.com/kailas-cloud/unisearch/internal/metrics"
)

// Defaults for the orchestration knobs.
const (
	DefaultClassifierTimeout = 3 * time.Second
	DefaultCandidateLimit    = 50
)

// Fallback reasons reported on the intent fallback counter.
const (
	fallbackError   = "error"
	fallbackTimeout = "timeout"
	fallbackPanic   = "panic"
	fallbackNone    = "no_classifier"
)

// Service runs the unified search pipeline: intent classification and
// keyword expansion, candidate retrieval, scoring and ranking.
type Service struct {
	retriever  Retriever
	classifier IntentClassifier
	expander   *Expander
	scorer     *Scorer
	logger     *zap.Logger

	classifierTimeout time.Duration
	candidateLimit    int
	now               func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClassifierTimeout bounds each classifier call.
func WithClassifierTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.classifierTimeout = d
		}
	}
}

// WithCandidateLimit caps the number of candidates fetched from the index.
func WithCandidateLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.candidateLimit = n
		}
	}
}

// WithClock overrides the time source used for recency scoring.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a search service. classifier may be nil, in which case every
// query is treated as GENERAL.
func New(
	retriever Retriever, classifier IntentClassifier,
	expander *Expander, scorer *Scorer, logger *zap.Logger, opts ...Option,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		retriever:         retriever,
		classifier:        classifier,
		expander:          expander,
		scorer:            scorer,
		logger:            logger,
		classifierTimeout: DefaultClassifierTimeout,
		candidateLimit:    DefaultCandidateLimit,
		now:               time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search executes one search request end to end.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Response, error) {
	start := time.Now()
	resp, err := s.search(ctx, req, s.now())

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.SearchRequestsTotal.WithLabelValues(string(resp.Sort), status).Inc()
	metrics.SearchDuration.WithLabelValues(string(resp.Sort)).Observe(time.Since(start).Seconds())
	if err == nil {
		metrics.SearchResults.Observe(float64(len(resp.Results)))
	}
	return resp, err
}

func (s *Service) search(ctx context.Context, req *request.Request, now time.Time) (result.Response, error) {
	query := req.Query()

	var (
		in       intent.Intent
		rawTerms []string
	)
	// Neither branch fails: both degrade internally.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		in = s.classify(gctx, query)
		return nil
	})
	g.Go(func() error {
		rawTerms = s.expander.Expand(gctx, query)
		return nil
	})
	_ = g.Wait()

	terms := mergeTerms(rawTerms, s.expander.ExpandSeeds(ctx, in.Seeds()))
	sortMode := mode.Resolve(req.Sort(), in.Sort)

	resp := result.Response{Intent: in, SearchTerms: terms, Sort: sortMode}

	cands, err := s.retriever.Retrieve(ctx, Retrieval{
		RawQuery: query,
		Terms:    terms,
		Sort:     sortMode,
		Limit:    s.candidateLimit,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrRetrieval) {
			err = fmt.Errorf("%w: %w", domain.ErrRetrieval, err)
		}
		return resp, err
	}

	results := s.scorer.ScoreAll(cands, terms, in, now)
	rank(results, sortMode)
	if len(results) > req.Limit() {
		results = results[:req.Limit()]
	}
	resp.Results = results
	return resp, nil
}

// classify never fails: errors, timeouts and panics yield the fallback intent.
// A classifier that ignores its context is abandoned at the deadline.
func (s *Service) classify(ctx context.Context, query string) intent.Intent {
	if s.classifier == nil {
		metrics.IntentFallbackTotal.WithLabelValues(fallbackNone).Inc()
		return intent.Fallback()
	}

	cctx, cancel := context.WithTimeout(ctx, s.classifierTimeout)
	defer cancel()

	type outcome struct {
		in     intent.Intent
		err    error
		reason string
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("classifier panic: %v", r), reason: fallbackPanic}
			}
		}()
		in, err := s.classifier.Classify(cctx, query)
		done <- outcome{in: in, err: err, reason: fallbackError}
	}()

	var out outcome
	select {
	case out = <-done:
	case <-cctx.Done():
		out = outcome{err: cctx.Err(), reason: fallbackError}
	}
	if out.err == nil {
		return out.in.Normalize()
	}

	if errors.Is(out.err, context.DeadlineExceeded) {
		out.reason = fallbackTimeout
	}
	metrics.IntentFallbackTotal.WithLabelValues(out.reason).Inc()
	s.logger.Warn("Intent classification failed, using fallback",
		zap.String("query", query),
		zap.String("reason", out.reason),
		zap.Error(out.err),
	)
	return intent.Fallback()
}
