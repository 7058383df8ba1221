package sse

import (
	"context"
	"log/slog"
	"sync"

	"github.com/teamclock/attendance-api/internal/domain/attendance"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	Event string
	Data  interface{}
}

// Hub fans live attendance events out to every connected subscriber.
// Subscribers are keyed by user so one manager may hold several tabs open.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	bufferSize  int
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		bufferSize:  16,
	}
}

// Subscribe registers a new subscriber and returns the event channel and cleanup function
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.bufferSize)

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[userID], ch)
			close(ch)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
		})
	}

	return ch, cleanup
}

// Broadcast sends an event to all subscribers. Slow subscribers miss events
// rather than block the publisher.
func (h *Hub) Broadcast(event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for userID, subs := range h.subscribers {
		for ch := range subs {
			select {
			case ch <- event:
				delivered++
			default:
				slog.Warn("SSE subscriber buffer full, dropping event", "user_id", userID, "event", event.Event)
			}
		}
	}
	return delivered
}

// Publish implements attendance.EventPublisher.
func (h *Hub) Publish(_ context.Context, e attendance.Event) {
	h.Broadcast(Event{Event: string(e.Type), Data: e})
}

// SubscriberCount returns the number of active subscribers for a user
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[userID])
}

// TotalSubscribers returns the total number of active subscribers across all users
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
