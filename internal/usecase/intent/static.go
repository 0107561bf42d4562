package intent

import (
	"context"

	domintent "github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/metrics"
)

// Static answers every query with the GENERAL fallback intent. It is wired
// when no classifier provider is configured.
type Static struct{}

// Classify returns domintent.Fallback.
func (Static) Classify(context.Context, string) (domintent.Intent, error) {
	metrics.IntentFallbackTotal.WithLabelValues("disabled").Inc()
	return domintent.Fallback(), nil
}
