package querylog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/unisearch/internal/metrics"
)

// DefaultBufferSize is the emitter queue length when none is configured.
const DefaultBufferSize = 256

// writeTimeout bounds a single sink write.
const writeTimeout = 5 * time.Second

// Emitter ships query log events to a Sink on a background worker.
// Emit never blocks the caller: when the queue is full the event is dropped.
type Emitter struct {
	sink   Sink
	logger *zap.Logger
	events chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// NewEmitter starts the worker. bufferSize <= 0 selects DefaultBufferSize.
func NewEmitter(sink Sink, bufferSize int, logger *zap.Logger) *Emitter {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Emitter{
		sink:   sink,
		logger: logger,
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
	go e.run()
	return e
}

// Emit enqueues ev, filling in ID and At when unset.
// It reports whether the event was accepted.
func (e *Emitter) Emit(ev Event) bool {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		metrics.QueryLogEventsTotal.WithLabelValues("dropped").Inc()
		return false
	}

	select {
	case e.events <- ev:
		return true
	default:
		metrics.QueryLogEventsTotal.WithLabelValues("dropped").Inc()
		e.logger.Warn("Query log queue full, dropping event",
			zap.String("event_id", ev.ID.String()),
		)
		return false
	}
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
func (e *Emitter) Close(ctx context.Context) error {
	e.once.Do(func() {
		e.mu.Lock()
		e.closed = true
		close(e.events)
		e.mu.Unlock()
	})

	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Emitter) run() {
	defer close(e.done)
	for ev := range e.events {
		e.write(ev)
	}
}

func (e *Emitter) write(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			metrics.QueryLogEventsTotal.WithLabelValues("failed").Inc()
			e.logger.Error("Query log sink panicked",
				zap.String("event_id", ev.ID.String()),
				zap.Any("panic", r),
			)
		}
	}()

	if err := e.sink.Write(ctx, ev); err != nil {
		metrics.QueryLogEventsTotal.WithLabelValues("failed").Inc()
		e.logger.Warn("Query log write failed",
			zap.String("event_id", ev.ID.String()),
			zap.Error(err),
		)
		return
	}
	metrics.QueryLogEventsTotal.WithLabelValues("written").Inc()
}
