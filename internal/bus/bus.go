// Package bus is a synchronous typed publish/subscribe dispatcher.
package bus

import (
	"log"
	"runtime/debug"
)

// Handler receives a published payload.
type Handler[P any] func(payload P)

// Bus is a synchronous publish/subscribe dispatcher. Handlers for a topic run
// in registration order before Publish returns.
type Bus[K comparable, P any] struct {
	handlers map[K][]Handler[P]
	logger   *log.Logger
}

// New constructs an empty bus. A nil logger falls back to log.Default().
func New[K comparable, P any](logger *log.Logger) *Bus[K, P] {
	if logger == nil {
		logger = log.Default()
	}
	return &Bus[K, P]{
		handlers: make(map[K][]Handler[P]),
		logger:   logger,
	}
}

// Subscribe registers handler for topic.
func (b *Bus[K, P]) Subscribe(topic K, handler Handler[P]) {
	if b == nil || handler == nil {
		return
	}
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish invokes every handler registered for topic with payload unchanged.
// A panicking handler is logged and skipped; the remaining handlers still run.
func (b *Bus[K, P]) Publish(topic K, payload P) {
	if b == nil {
		return
	}
	// Handlers subscribed during dispatch only see later publishes.
	handlers := b.handlers[topic]
	for i, h := range handlers {
		b.invoke(topic, i, h, payload)
	}
}

// Subscribers reports how many handlers are registered for topic.
func (b *Bus[K, P]) Subscribers(topic K) int {
	if b == nil {
		return 0
	}
	return len(b.handlers[topic])
}

func (b *Bus[K, P]) invoke(topic K, index int, h Handler[P], payload P) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("bus: handler %d for topic %v panicked: %v\n%s", index, topic, r, debug.Stack())
		}
	}()
	h(payload)
}
