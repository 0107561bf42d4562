package unisearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	pgstore "github.com/kailas-cloud/unisearch/internal/db/postgres"
	"github.com/kailas-cloud/unisearch/internal/domain/score"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
	"github.com/kailas-cloud/unisearch/internal/domain/search/policy"
	"github.com/kailas-cloud/unisearch/internal/domain/search/request"
	"github.com/kailas-cloud/unisearch/internal/domain/search/result"
	contentrepo "github.com/kailas-cloud/unisearch/internal/repository/content"
	keywordrepo "github.com/kailas-cloud/unisearch/internal/repository/keyword"
	openaiTransport "github.com/kailas-cloud/unisearch/internal/transport/openai"
	healthuc "github.com/kailas-cloud/unisearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/unisearch/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultMaxConns         = 10
	defaultFuzzyFloor       = 0.1
)

// searchUseCase is the internal interface for substitution in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (result.Response, error)
	Diagnose(ctx context.Context, req *request.Request) (searchuc.Diagnosis, error)
}

type store interface {
	Ping(ctx context.Context) error
	Close()
}

// Client is the unisearch SDK entry point.
type Client struct {
	store     store
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the search index.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		maxConns:         defaultMaxConns,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.dsn == "" {
		return nil, errors.New("unisearch: database DSN required (use WithPostgres)")
	}
	if cfg.classifier != nil && cfg.openAI != nil {
		return nil, errors.New("unisearch: WithClassifier and WithOpenAIClassifier are mutually exclusive")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	st, err := pgstore.NewStore(ctx, pgstore.Config{DSN: cfg.dsn, MaxConns: cfg.maxConns})
	if err != nil {
		return nil, fmt.Errorf("unisearch: create postgres store: %w", err)
	}
	if err := st.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		st.Close()
		return nil, fmt.Errorf("unisearch: database not ready: %w", err)
	}
	if cfg.migrate {
		if err := st.Migrate(); err != nil {
			st.Close()
			return nil, fmt.Errorf("unisearch: migrate: %w", err)
		}
	}

	return wireClient(st, cfg, obs), nil
}

func wireClient(st *pgstore.Store, cfg *clientConfig, obs *observer) *Client {
	logger := zap.NewNop()

	classifier, checker := buildClassifier(cfg, logger)
	searchSvc := searchuc.New(
		contentrepo.New(st, defaultFuzzyFloor, logger),
		classifier,
		searchuc.NewExpander(keywordrepo.New(st), logger),
		searchuc.NewScorer(score.NewModel(score.DefaultPolicy()), policy.Default()),
		logger,
		searchuc.WithClassifierTimeout(cfg.classifierTimeout),
	)

	return &Client{
		store:     st,
		searchSvc: searchSvc,
		healthSvc: healthuc.New(st, healthuc.WithClassifier(checker)),
		obs:       obs,
	}
}

// buildClassifier returns a nil classifier when none is configured; the
// search service then answers with the GENERAL intent.
func buildClassifier(cfg *clientConfig, logger *zap.Logger) (searchuc.IntentClassifier, healthuc.Checker) {
	switch {
	case cfg.openAI != nil:
		cl := openaiTransport.NewClassifier(&openaiTransport.Config{
			APIKey:   cfg.openAI.apiKey,
			BaseURL:  cfg.openAI.baseURL,
			Model:    cfg.openAI.model,
			Provider: "openai",
			Logger:   logger,
		})
		return cl, cl
	case cfg.classifier != nil:
		return &classifierAdapter{inner: cfg.classifier}, nil
	}
	return nil, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// SearchOption tunes a single search.
type SearchOption func(*searchParams)

type searchParams struct {
	limit int
}

// Limit caps the number of results (1..50, default 20).
func Limit(n int) SearchOption {
	return func(p *searchParams) { p.limit = n }
}

// Search ranks the index for query. sort may be SortDefault.
// A failing classifier never fails the search; an unreachable index returns
// ErrRetrieval.
func (c *Client) Search(ctx context.Context, query string, sort SortMode, opts ...SearchOption) (_ Response, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err, "sort", string(sort)) }()

	req, err := buildRequest(query, sort, opts)
	if err != nil {
		return Response{}, err
	}
	resp, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return Response{}, fmt.Errorf("search: %w", err)
	}
	c.obs.observeResults(len(resp.Results))
	return responseFromDomain(resp), nil
}

// Diagnose runs a search and returns the scoring inputs of every result.
func (c *Client) Diagnose(ctx context.Context, query string, sort SortMode, opts ...SearchOption) (_ Diagnosis, err error) {
	start := time.Now()
	defer func() { c.obs.observe("diagnose", start, err, "sort", string(sort)) }()

	req, err := buildRequest(query, sort, opts)
	if err != nil {
		return Diagnosis{}, err
	}
	d, err := c.searchSvc.Diagnose(ctx, &req)
	if err != nil {
		return Diagnosis{}, fmt.Errorf("diagnose: %w", err)
	}
	return diagnosisFromDomain(d), nil
}

func buildRequest(query string, sort SortMode, opts []SearchOption) (request.Request, error) {
	p := searchParams{}
	for _, o := range opts {
		o(&p)
	}
	m, ok := mode.Parse(string(sort))
	if !ok {
		return request.Request{}, fmt.Errorf("sort %q: %w", sort, ErrInvalidSortMode)
	}
	req, err := request.New(query, m, p.limit)
	if err != nil {
		return request.Request{}, fmt.Errorf("request: %w", err)
	}
	return req, nil
}

// classifierAdapter wraps a public IntentClassifier for the search service.
type classifierAdapter struct {
	inner IntentClassifier
}

func (a *classifierAdapter) Classify(ctx context.Context, query string) (intent.Intent, error) {
	in, err := a.inner.Classify(ctx, query)
	if err != nil {
		return intent.Intent{}, fmt.Errorf("classify: %w", err)
	}
	return intentToDomain(in), nil
}
