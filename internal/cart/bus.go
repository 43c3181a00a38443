package cart

import "sync"

// Bus is the in-process change-notification channel for the cart. The
// store publishes after every persisted mutation and subscribers re-read
// storage on receipt. Delivery is synchronous: Publish returns only after
// every subscriber callback has run, so a subscriber reading storage
// inside its callback always observes the post-mutation state.
//
// The signal carries no payload and is scoped to this process. A second
// process (or browser tab, in the original deployment) does not hear it
// and stays stale until its next read.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func())}
}

// Subscribe registers fn for change notifications and returns the
// matching unsubscribe function. Unsubscribing twice is harmless.
func (b *Bus) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish invokes every subscriber callback before returning.
func (b *Bus) Publish() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
