package events

import (
	"sync/atomic"

	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting.
// A nil *Bus is valid and drops everything, so publishers never need to check.
type Bus struct {
	dispatcher *event.Dispatcher
	published  atomic.Uint64
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers
// Usage: bus.Publish(ProcessKilledEvent{...})
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	switch e := ev.(type) {
	case CommandExecutedEvent:
		b.published.Add(1)
		event.Publish(b.dispatcher, e)
	case ListingCompletedEvent:
		b.published.Add(1)
		event.Publish(b.dispatcher, e)
	case SnapshotTakenEvent:
		b.published.Add(1)
		event.Publish(b.dispatcher, e)
	case ProcessKilledEvent:
		b.published.Add(1)
		event.Publish(b.dispatcher, e)
	case KillSkippedEvent:
		b.published.Add(1)
		event.Publish(b.dispatcher, e)
	case KillFailedEvent:
		b.published.Add(1)
		event.Publish(b.dispatcher, e)
	}
}

// Published returns how many events have been published so far.
func (b *Bus) Published() uint64 {
	if b == nil {
		return 0
	}
	return b.published.Load()
}

// Subscribe subscribes to events with a handler function.
// The handler type determines which events it receives.
// Returns an unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e ProcessKilledEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	if b == nil {
		return func() {}
	}
	switch h := handler.(type) {
	case func(CommandExecutedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ListingCompletedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(SnapshotTakenEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ProcessKilledEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(KillSkippedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(KillFailedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}
