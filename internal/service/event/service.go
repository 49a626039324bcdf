package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-agenda/pkg/logger"
	"github.com/jwalitptl/clinic-agenda/pkg/metrics"
)

// Bus delivers events synchronously, in subscription order, on the
// emitting goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	logger   *logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewBus(log *logger.Logger, m *metrics.Metrics) *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
		logger:   log.With("event"),
		metrics:  m,
		now:      time.Now,
	}
}

func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit runs every handler subscribed to eventType and joins their errors.
func (b *Bus) Emit(ctx context.Context, eventType EventType, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[eventType]...)
	b.mu.RUnlock()

	evt := Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payload,
		CreatedAt: b.now(),
	}

	b.metrics.EventsEmitted.WithLabelValues(string(eventType)).Inc()
	b.logger.Debug("event emitted", "event_id", evt.ID.String(), "event_type", string(eventType), "handlers", len(handlers))

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, evt); err != nil {
			b.metrics.EventFailures.WithLabelValues(string(eventType)).Inc()
			b.logger.Error(err, "event handler failed", "event_id", evt.ID.String(), "event_type", string(eventType))
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to handle %s: %w", eventType, errors.Join(errs...))
	}
	return nil
}
