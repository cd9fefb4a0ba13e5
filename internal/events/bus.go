// Package events carries the cross-component refresh signal: views that
// cache derived progress (dashboards, set lists) subscribe, and the study
// flow publishes after every accepted answer and at session completion.
// The signal is a best-effort invalidation hint: no required
// subscribers, no acknowledgment, no ordering guarantee.
package events

import "sync"

// ProgressUpdated announces that study progress changed for a set.
type ProgressUpdated struct {
	SetID int
}

// Bus is a process-local publish/subscribe channel for progress
// signals. The zero value is not usable; construct with NewBus and
// inject it into publishers and observers explicitly.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan ProgressUpdated
	next int
}

// subBuffer bounds how many unconsumed signals a subscriber can hold
// before further publishes to it are dropped.
const subBuffer = 8

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan ProgressUpdated)}
}

// Subscribe registers an observer. The returned cancel func must be
// called when the observer goes away; after cancel the channel is
// closed.
func (b *Bus) Subscribe() (<-chan ProgressUpdated, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan ProgressUpdated, subBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish broadcasts a signal to all current subscribers without
// blocking. Subscribers with full buffers miss the signal; they will
// refetch on their next one.
func (b *Bus) Publish(ev ProgressUpdated) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
