// Package event is a small in-process event bus.
package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/orderservice/pkg/logger"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload interface{})

// Bus dispatches named events to registered listeners. The zero value is
// not usable; call NewBus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (b *Bus) Listen(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

func (b *Bus) snapshot(event string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Handler(nil), b.handlers[event]...)
}

// Fire runs every listener synchronously. A panicking listener is logged
// and does not stop the others.
func (b *Bus) Fire(ctx context.Context, event string, payload interface{}) {
	for _, h := range b.snapshot(event) {
		b.call(ctx, event, h, payload)
	}
}

// Flush removes all listeners.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}

func (b *Bus) call(ctx context.Context, event string, h Handler, payload interface{}) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.WithCtx(ctx).Error("event listener panicked",
				"event", event,
				"error", fmt.Sprintf("%v", rec),
			)
		}
	}()
	h(ctx, payload)
}
