package service

import (
	"sync"
	"sync/atomic"
)

// Resources named in events.
const (
	ResourceStations  = "stations"
	ResourceLayers    = "layers"
	ResourcePOIs      = "pois"
	ResourceSections  = "sections"
	ResourceGeofences = "geofences"
	ResourceProject   = "project"
	ResourceDisplay   = "display"
)

// Actions named in events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionMoved   = "moved"
	ActionSaved   = "saved"
)

// Event represents a project mutation.
type Event struct {
	Resource string // e.g. "stations"
	Action   string // "created", "updated", "deleted", "moved", "saved"
	ID       string // resource ID, empty for project-wide events
	Seq      uint64 // assigned by Publish, increasing
}

// EventBus is a simple fan-out pub/sub for project change events.
type EventBus struct {
	mu      sync.RWMutex
	subs    map[chan Event]struct{}
	seq     atomic.Uint64
	dropped atomic.Uint64
}

// NewEventBus creates a new event bus.
func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[chan Event]struct{})}
}

// Publish stamps e with the next sequence number and sends it to all
// subscribers without blocking. It returns the stamped event.
func (b *EventBus) Publish(e Event) Event {
	e.Seq = b.seq.Add(1)
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			// subscriber too slow, skip
			b.dropped.Add(1)
		}
	}
	return e
}

// Dropped returns how many deliveries were skipped for slow subscribers.
func (b *EventBus) Dropped() uint64 {
	return b.dropped.Load()
}

// Subscribe returns a buffered channel that receives events.
func (b *EventBus) Subscribe() chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *EventBus) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
	close(ch)
}

// Subscribers returns the number of open subscriptions.
func (b *EventBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
