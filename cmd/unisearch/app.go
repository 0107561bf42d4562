package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/unisearch/internal/config"
	pgstore "github.com/kailas-cloud/unisearch/internal/db/postgres"
	redisstore "github.com/kailas-cloud/unisearch/internal/db/redis"
	"github.com/kailas-cloud/unisearch/internal/domain/score"
	"github.com/kailas-cloud/unisearch/internal/metrics"
	contentrepo "github.com/kailas-cloud/unisearch/internal/repository/content"
	"github.com/kailas-cloud/unisearch/internal/repository/intentcache"
	keywordrepo "github.com/kailas-cloud/unisearch/internal/repository/keyword"
	querylogrepo "github.com/kailas-cloud/unisearch/internal/repository/querylog"
	openaiTransport "github.com/kailas-cloud/unisearch/internal/transport/openai"
	healthuc "github.com/kailas-cloud/unisearch/internal/usecase/health"
	intentuc "github.com/kailas-cloud/unisearch/internal/usecase/intent"
	"github.com/kailas-cloud/unisearch/internal/usecase/querylog"
	searchuc "github.com/kailas-cloud/unisearch/internal/usecase/search"
)

// app holds the wired dependencies shared by serve and diagnose.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	store    *pgstore.Store
	cache    *redisstore.Store
	search   *searchuc.Service
	health   *healthuc.Service
	queryLog *querylog.Emitter
}

type appOptions struct {
	queryLog bool
}

// newApp connects to storage and builds the search pipeline.
func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger, opts appOptions) (*app, error) {
	metrics.RegisterSearchMetrics()

	store, err := pgstore.NewStore(ctx, pgstore.Config{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("create postgres store: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, store: store}

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database")

	if cfg.Database.MigrateOnStart {
		if err := store.Migrate(); err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("Migrations applied")
	}

	if cfg.Cache.Enabled {
		a.cache, err = redisstore.NewStore(redisstore.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("create intent cache: %w", err)
		}
	}

	classifier, classifierHealth := buildClassifier(cfg, a.cache, logger)
	a.search = buildSearchService(cfg, store, classifier, logger)

	healthOpts := []healthuc.Option{healthuc.WithClassifier(classifierHealth)}
	if a.cache != nil {
		healthOpts = append(healthOpts, healthuc.WithCache(a.cache))
	}
	a.health = healthuc.New(store, healthOpts...)

	if opts.queryLog && cfg.QueryLog.Enabled {
		a.queryLog = querylog.NewEmitter(querylogrepo.New(store), cfg.QueryLog.BufferSize, logger)
	}
	return a, nil
}

// close drains the query log and releases connections.
func (a *app) close(ctx context.Context) {
	if a.queryLog != nil {
		if err := a.queryLog.Close(ctx); err != nil {
			a.logger.Warn("Query log drain incomplete", zap.Error(err))
		}
	}
	if a.cache != nil {
		a.cache.Close()
	}
	a.store.Close()
}

// buildSearchService assembles the search orchestrator from config.
func buildSearchService(
	cfg config.Config, store *pgstore.Store, classifier searchuc.IntentClassifier, logger *zap.Logger,
) *searchuc.Service {
	return searchuc.New(
		contentrepo.New(store, cfg.Search.FuzzyFloor, logger),
		classifier,
		searchuc.NewExpander(keywordrepo.New(store), logger),
		searchuc.NewScorer(score.NewModel(cfg.ScorePolicy()), cfg.Ranking),
		logger,
		searchuc.WithClassifierTimeout(cfg.Classifier.Timeout),
		searchuc.WithCandidateLimit(cfg.Search.CandidateLimit),
	)
}

// buildClassifier assembles the classifier chain: OpenAI -> Instrumented -> Cached.
// The returned checker is nil when no remote classifier is configured.
func buildClassifier(
	cfg config.Config, cache *redisstore.Store, logger *zap.Logger,
) (searchuc.IntentClassifier, healthuc.Checker) {
	if !cfg.Classifier.Enabled {
		logger.Info("Intent classifier disabled, every query is GENERAL")
		return intentuc.Static{}, nil
	}

	base := openaiTransport.NewClassifier(&openaiTransport.Config{
		APIKey:   cfg.Classifier.APIKey,
		BaseURL:  cfg.Classifier.BaseURL,
		Model:    cfg.Classifier.Model,
		Provider: cfg.Classifier.Provider,
		Logger:   logger,
	})
	instrumented := intentuc.NewInstrumented(base, cfg.Classifier.Provider, cfg.Classifier.Model, logger)

	logger.Info("Intent classifier created",
		zap.String("provider", cfg.Classifier.Provider),
		zap.String("model", cfg.Classifier.Model),
		zap.Bool("cached", cache != nil),
	)
	if cache == nil {
		return instrumented, instrumented
	}
	cached := intentcache.New(instrumented, cache, cfg.Cache.TTL, metrics.IntentCacheTotal, logger)
	return cached, cached
}
