package querylog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
)

// Event records one served search.
type Event struct {
	ID          uuid.UUID
	Query       string
	ResultCount int
	UserID      string
	Sort        mode.Mode
	At          time.Time
}

// Sink persists query log events.
type Sink interface {
	Write(ctx context.Context, e Event) error
}
