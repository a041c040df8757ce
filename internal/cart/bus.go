package cart

import (
	"sync"

	"wellnexus_back_end/internal/models"
)

// Bus fans cart changes out to in-process subscribers (navigation badge,
// cart view, websocket pumps) without a shared state tree. Delivery is
// fire-and-forget: a subscriber that is not draining its channel misses
// intermediate states, never blocks a writer.
type Bus struct {
	mu   sync.Mutex
	subs map[string]map[int]chan models.Cart
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]chan models.Cart)}
}

// Subscribe returns a channel of cart snapshots for the user and a cancel
// function. Cancel is symmetric with Subscribe: every subscriber must call
// it on unmount or its callback slot leaks.
func (b *Bus) Subscribe(userID string) (<-chan models.Cart, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[userID] == nil {
		b.subs[userID] = make(map[int]chan models.Cart)
	}
	id := b.next
	b.next++

	ch := make(chan models.Cart, 8)
	b.subs[userID][id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[userID][id]; ok {
			delete(b.subs[userID], id)
			if len(b.subs[userID]) == 0 {
				delete(b.subs, userID)
			}
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers a snapshot to every current subscriber of the user.
func (b *Bus) Publish(userID string, cart models.Cart) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs[userID] {
		select {
		case ch <- cart:
		default: // slow subscriber, drop; the next write carries fresh state
		}
	}
}

// Subscribers reports how many listeners the user currently has.
func (b *Bus) Subscribers(userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[userID])
}
