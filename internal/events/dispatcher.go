package events

import (
	"context"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher decouples event producers from consumers. Handlers are
// registered during startup wiring; steady-state traffic only reads the
// registry.
type Dispatcher interface {
	// Publish hands the event to every registered handler, each on its
	// own goroutine, and returns without awaiting completion.
	Publish(ctx context.Context, event Event)
	// PublishAndWait delivers like Publish but blocks until every handler
	// has finished. Handler failures are isolated, never returned.
	PublishAndWait(ctx context.Context, event Event)
	Subscribe(eventType EventType, handler EventHandler)
}

// inMemoryDispatcher is a simple in-process dispatcher. Events published
// before a handler subscribes are never replayed.
type inMemoryDispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{
		listeners: make(map[EventType][]EventHandler),
	}
}

func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) {
	for _, handler := range d.snapshot(event.Type) {
		go invoke(ctx, handler, event)
	}
}

func (d *inMemoryDispatcher) PublishAndWait(ctx context.Context, event Event) {
	handlers := d.snapshot(event.Type)

	var wg sync.WaitGroup
	wg.Add(len(handlers))
	for _, handler := range handlers {
		go func(h EventHandler) {
			defer wg.Done()
			invoke(ctx, h, event)
		}(handler)
	}
	wg.Wait()
}

// Subscribe registers a handler for the given event type.
func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

func (d *inMemoryDispatcher) snapshot(eventType EventType) []EventHandler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]EventHandler{}, d.listeners[eventType]...)
}

// invoke runs one handler in isolation: neither its error nor a panic
// may affect sibling handlers or the publisher.
func invoke(ctx context.Context, handler EventHandler, event Event) {
	defer func() {
		_ = recover()
	}()
	_ = handler(ctx, event)
}
