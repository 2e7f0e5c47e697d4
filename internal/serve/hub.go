package serve

import (
	"sync"

	"github.com/born-ml/feedforward/internal/nn"
)

// Hub fans epoch reports out to subscribers.
//
// Publish never blocks: a subscriber whose buffer is full misses the
// report.
type Hub struct {
	mu   sync.Mutex
	subs map[chan nn.EpochReport]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan nn.EpochReport]struct{})}
}

// Subscribe registers a new subscriber with the given buffer size.
//
// The returned cancel function unregisters the subscriber and closes its
// channel. It is safe to call more than once.
func (h *Hub) Subscribe(buffer int) (<-chan nn.EpochReport, func()) {
	ch := make(chan nn.EpochReport, buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers r to every subscriber with buffer space.
func (h *Hub) Publish(r nn.EpochReport) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- r:
		default:
		}
	}
}

// Len returns the number of active subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
