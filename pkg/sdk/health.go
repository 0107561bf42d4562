package unisearch

import (
	"context"
	"time"

	healthuc "github.com/kailas-cloud/unisearch/internal/usecase/health"
)

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Health checks the index database and, when configured, the classifier.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)
	c.obs.observe("health", start, nil, "status", string(report.Status))

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
