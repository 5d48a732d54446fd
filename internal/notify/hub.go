package notify

import (
	"log/slog"
	"sync"

	"github.com/mcoot/blockdrop/internal/model"
)

// DefaultBuffer is the per-subscriber channel size used when none is given
const DefaultBuffer = 64

// Subscription receives score events on a buffered channel
type Subscription struct {
	name   string
	events chan model.ScoreEvent
	hub    *Hub
}

// Events returns the receive channel. It is closed on Unsubscribe or Hub.Close.
func (s *Subscription) Events() <-chan model.ScoreEvent {
	return s.events
}

// Unsubscribe removes the subscription from its hub
func (s *Subscription) Unsubscribe() {
	s.hub.unregister(s)
}

// Hub fans score events out to subscribers. Publish never blocks: a
// subscriber whose buffer is full misses the event.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscription]bool
	closed      bool
	logger      *slog.Logger

	sent    int
	dropped int
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[*Subscription]bool),
		logger:      logger.With(slog.String("component", "notify")),
	}
}

// Subscribe registers a named subscriber with the given channel buffer.
// Subscribing to a closed hub returns a subscription whose channel is already closed.
func (h *Hub) Subscribe(name string, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	sub := &Subscription{
		name:   name,
		events: make(chan model.ScoreEvent, buffer),
		hub:    h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.events)
		return sub
	}
	h.subscribers[sub] = true
	h.logger.Debug("score subscriber registered",
		slog.String("subscriber", name),
		slog.Int("total_subscribers", len(h.subscribers)))
	return sub
}

func (h *Hub) unregister(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[sub]; !ok {
		return
	}
	delete(h.subscribers, sub)
	close(sub.events)
	h.logger.Debug("score subscriber unregistered",
		slog.String("subscriber", sub.name),
		slog.Int("total_subscribers", len(h.subscribers)))
}

// Publish delivers event to every subscriber with buffer space
func (h *Hub) Publish(event model.ScoreEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	for sub := range h.subscribers {
		select {
		case sub.events <- event:
			h.sent++
		default:
			h.dropped++
			h.logger.Warn("score event dropped - subscriber buffer full",
				slog.String("subscriber", sub.name),
				slog.String("game_id", string(event.GameID)),
				slog.Int("score", event.Score))
		}
	}
}

// Close closes every subscriber channel. Further publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	count := len(h.subscribers)
	for sub := range h.subscribers {
		close(sub.events)
		delete(h.subscribers, sub)
	}
	h.logger.Debug("score hub closed", slog.Int("disconnected_subscribers", count))
}

// SubscriberCount returns the number of registered subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Counts returns how many deliveries succeeded and how many were dropped
func (h *Hub) Counts() (sent, dropped int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sent, h.dropped
}
