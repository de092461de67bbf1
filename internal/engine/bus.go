package engine

import "sync"

// Event marks a collection as changed for one tenant. Events carry no
// payload; subscribers re-read the store.
type Event struct {
	Collection string
	TenantID   string
}

// Bus fans change events out to subscribers. Publish never blocks: a
// subscriber that is behind simply misses the event, which is harmless
// because every refresh rebuilds from the store anyway.
type Bus struct {
	mu   sync.Mutex
	subs []chan Event
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
