package unisearch

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IntentClassifier classifies a query. Implementations must honor ctx;
// failures degrade the search to a GENERAL intent instead of failing it.
type IntentClassifier interface {
	Classify(ctx context.Context, query string) (Intent, error)
}

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	dsn              string
	maxConns         int32
	readinessTimeout time.Duration
	migrate          bool

	classifier        IntentClassifier
	openAI            *openAIConfig
	classifierTimeout time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

type openAIConfig struct {
	apiKey  string
	baseURL string
	model   string
}

// WithPostgres sets the PostgreSQL connection string of the search index.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dsn = dsn
	})
}

// WithMaxConns caps the connection pool size. Default: 10.
func WithMaxConns(n int32) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxConns = n
	})
}

// WithReadinessTimeout bounds the initial database wait in New. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithMigrations applies pending schema migrations in New.
func WithMigrations() Option {
	return optionFunc(func(c *clientConfig) {
		c.migrate = true
	})
}

// WithClassifier sets a custom intent classifier.
// Without a classifier every query is treated as GENERAL.
func WithClassifier(cl IntentClassifier) Option {
	return optionFunc(func(c *clientConfig) {
		c.classifier = cl
	})
}

// WithOpenAIClassifier classifies intents with an OpenAI-compatible chat
// model. An empty baseURL uses the OpenAI API.
func WithOpenAIClassifier(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAI = &openAIConfig{apiKey: apiKey, baseURL: baseURL, model: model}
	})
}

// WithClassifierTimeout bounds each classification. Default: 3s.
func WithClassifierTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.classifierTimeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
