package event

import (
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/prepdeck/prepdeck/internal/logging"
)

// Handler is a function that handles an event.
type Handler func(Event)

// subscription represents a registered event handler.
type subscription struct {
	id      uint64
	handler Handler
}

// Bus is a synchronous pub-sub event bus keyed by event type. It allows the
// lifecycle controller, monitor, and host surfaces to communicate without
// direct dependencies.
type Bus struct {
	mu            sync.RWMutex
	subscriptions map[string][]subscription // event type -> subscriptions
	nextID        atomic.Uint64
	log           *logging.Logger
}

// NewBus creates a new event bus. Listener panics are reported through the
// given logger; a nil logger falls back to a no-op logger.
func NewBus(log *logging.Logger) *Bus {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Bus{
		subscriptions: make(map[string][]subscription),
		log:           log,
	}
}

// Subscribe registers a handler for a specific event type.
// Returns a subscription ID that can be used to unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID.Add(1)
	b.subscriptions[eventType] = append(b.subscriptions[eventType], subscription{
		id:      id,
		handler: handler,
	})
	return id
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(handler Handler) uint64 {
	return b.Subscribe("*", handler)
}

// Unsubscribe removes a subscription by ID.
// Returns true if the subscription was found and removed.
func (b *Bus) Unsubscribe(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subscriptions {
		for i, sub := range subs {
			if sub.id == id {
				b.subscriptions[eventType] = append(subs[:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Publish dispatches an event to all registered handlers: first those
// subscribed to the event's type, then wildcard subscribers, each group in
// registration order. A panicking handler is logged and skipped; remaining
// handlers still run.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	eventType := event.EventType()

	specific := make([]subscription, len(b.subscriptions[eventType]))
	copy(specific, b.subscriptions[eventType])

	wildcard := make([]subscription, len(b.subscriptions["*"]))
	copy(wildcard, b.subscriptions["*"])

	b.mu.RUnlock()

	for _, sub := range specific {
		b.safeCall(sub.handler, event)
	}
	for _, sub := range wildcard {
		b.safeCall(sub.handler, event)
	}
}

// safeCall invokes a handler and recovers from any panic so that one
// misbehaving listener cannot block delivery to the others or unwind the
// publishing operation.
func (b *Bus) safeCall(handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event listener panicked",
				"event", event.EventType(),
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	handler(event)
}

// Clear removes all subscriptions.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions = make(map[string][]subscription)
}

// SubscriptionCount returns the total number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.subscriptions {
		count += len(subs)
	}
	return count
}
