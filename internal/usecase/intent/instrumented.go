package intent

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domintent "github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/metrics"
)

// Classifier is the wrapped classifier contract.
type Classifier interface {
	Classify(ctx context.Context, query string) (domintent.Intent, error)
}

// HealthChecker is implemented by classifiers that can probe their provider.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Instrumented wraps a Classifier with request metrics and logging.
type Instrumented struct {
	inner    Classifier
	provider string
	model    string
	logger   *zap.Logger
}

// NewInstrumented wraps inner with observability.
func NewInstrumented(inner Classifier, provider, model string, logger *zap.Logger) *Instrumented {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Instrumented{inner: inner, provider: provider, model: model, logger: logger}
}

// Classify delegates to the inner classifier and records the outcome.
func (c *Instrumented) Classify(ctx context.Context, query string) (domintent.Intent, error) {
	start := time.Now()
	in, err := c.inner.Classify(ctx, query)
	duration := time.Since(start)

	metrics.ClassifierRequestDuration.WithLabelValues(c.provider, c.model).Observe(duration.Seconds())

	if err != nil {
		status := "error"
		if ctx.Err() != nil {
			status = "timeout"
		}
		metrics.ClassifierRequestsTotal.WithLabelValues(c.provider, c.model, status).Inc()
		c.logger.Error("Intent classification request failed",
			zap.String("provider", c.provider),
			zap.String("model", c.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domintent.Intent{}, fmt.Errorf("classify: %w", err)
	}

	metrics.ClassifierRequestsTotal.WithLabelValues(c.provider, c.model, "ok").Inc()
	c.logger.Debug("Intent classification completed",
		zap.String("provider", c.provider),
		zap.String("model", c.model),
		zap.Duration("duration", duration),
		zap.String("category", string(in.Category)),
		zap.String("sub_category", in.SubCategory),
		zap.Int("keywords", len(in.Keywords)),
	)
	return in, nil
}

// HealthCheck forwards to the inner classifier when it supports probing.
func (c *Instrumented) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
