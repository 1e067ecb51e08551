package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"marketplace-api/internal/domain"
	"marketplace-api/internal/metrics"
)

// Handler consumes one event. Returned errors are logged and counted by the
// bus; they never reach the publisher.
type Handler interface {
	Handle(ctx context.Context, evt domain.Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, evt domain.Event) error

func (f HandlerFunc) Handle(ctx context.Context, evt domain.Event) error {
	return f(ctx, evt)
}

// Publisher is the side consumed by services that emit events.
type Publisher interface {
	Publish(ctx context.Context, evt domain.Event)
}

// Bus is a process-local publish/subscribe channel. Dispatch is
// fire-and-forget: Publish spawns one goroutine per subscribed handler and
// returns immediately. There is no persistence and no delivery guarantee.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	inflight sync.WaitGroup
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func New(logger *slog.Logger, m *metrics.Metrics) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
		metrics:  m,
	}
}

// Subscribe registers a handler for the named event. Registration happens
// during startup wiring; subscribers added after Publish calls begin simply
// miss the earlier events.
func (b *Bus) Subscribe(event string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], h)
}

// Publish dispatches evt to every subscribed handler asynchronously. Handler
// errors and panics are logged and counted, never propagated; handlers for the
// same event run in no particular order.
func (b *Bus) Publish(ctx context.Context, evt domain.Event) {
	b.mu.RLock()
	subs := b.handlers[evt.Name()]
	b.mu.RUnlock()

	if b.metrics != nil {
		b.metrics.EventsPublished.WithLabelValues(evt.Name()).Inc()
	}

	// Detach from the caller's cancellation: side effects outlive the request.
	hctx := context.WithoutCancel(ctx)

	for _, h := range subs {
		h := h
		b.inflight.Add(1)
		go func() {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					b.fail(evt, fmt.Errorf("handler panic: %v", r))
				}
			}()
			if err := h.Handle(hctx, evt); err != nil {
				b.fail(evt, err)
			}
		}()
	}
}

// Drain blocks until all in-flight handlers complete. Used by graceful
// shutdown and tests; publishers never call it.
func (b *Bus) Drain() {
	b.inflight.Wait()
}

func (b *Bus) fail(evt domain.Event, err error) {
	if b.metrics != nil {
		b.metrics.HandlerFailures.WithLabelValues(evt.Name()).Inc()
	}
	if b.logger != nil {
		b.logger.Error("event handler failed", "event", evt.Name(), "error", err)
	}
}
