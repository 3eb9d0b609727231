// Package notifications provides real-time delivery of submission update
// events to subscribed views.
package notifications

import (
	"errors"
	"sync"
)

const (
	// Max subscribers per submission record
	maxSubsPerRecord = 32
	// Max total subscribers
	maxTotalSubs = 10000

	subscriberBuffer = 8
)

// Hub fans out update events to subscribers keyed by submission id. A
// subscriber only ever receives events for the record it subscribed to;
// delivery is best effort and a slow subscriber drops events rather than
// blocking the publisher.
type Hub struct {
	mu        sync.RWMutex
	subs      map[string]map[chan []byte]struct{}
	totalSubs int
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan []byte]struct{})}
}

// Subscribe registers for update events on one submission id. The returned
// release function must be called when the owning view goes away; it is
// safe to call more than once.
func (h *Hub) Subscribe(id string) (<-chan []byte, func(), error) {
	h.mu.Lock()

	if h.totalSubs >= maxTotalSubs {
		h.mu.Unlock()
		return nil, nil, errors.New("server subscription limit reached")
	}

	m, ok := h.subs[id]
	if !ok {
		m = make(map[chan []byte]struct{})
		h.subs[id] = m
	}

	if len(m) >= maxSubsPerRecord {
		h.mu.Unlock()
		return nil, nil, errors.New("record subscription limit reached")
	}

	ch := make(chan []byte, subscriberBuffer)
	m[ch] = struct{}{}
	h.totalSubs++
	h.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			h.mu.Lock()
			if m, ok := h.subs[id]; ok {
				if _, exists := m[ch]; exists {
					delete(m, ch)
					h.totalSubs--
					close(ch)
				}
				if len(m) == 0 {
					delete(h.subs, id)
				}
			}
			h.mu.Unlock()
		})
	}

	return ch, release, nil
}

// Publish delivers payload to every subscriber of the given submission id.
func (h *Hub) Publish(id string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[id] {
		select {
		case ch <- payload:
		default:
			// Slow subscriber, drop the event. The stream is an
			// optimization; a full reload still shows true state.
		}
	}
}

// SubscriberCount reports the current number of subscribers for a record.
func (h *Hub) SubscriberCount(id string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[id])
}
