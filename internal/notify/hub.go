// Package notify implements the group-scoped broadcast channel. Rooms
// are keyed by group id; observers join and leave explicitly and get no
// replay of events they missed. Delivery is at-most-once and
// best-effort: with no observers an event is simply dropped.
package notify

import (
	"sync"

	"github.com/rs/zerolog"
)

// Event names emitted by the API.
const (
	EventNewRequest      = "new_request"
	EventNewContribution = "new_contribution"
)

// Event is one frame delivered to room observers.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

// Subscriber receives events for a room it has joined. Notify must be
// safe for concurrent use.
type Subscriber interface {
	Notify(Event) error
}

// Hub fans events out to per-group rooms.
type Hub struct {
	mu     sync.Mutex
	rooms  map[string]*room
	logger zerolog.Logger
}

type room struct {
	mu          sync.Mutex
	subscribers map[Subscriber]struct{}
}

// NewHub creates an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{rooms: make(map[string]*room), logger: logger}
}

func (h *Hub) room(groupID string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[groupID]
	if ok {
		return r
	}
	r = &room{subscribers: make(map[Subscriber]struct{})}
	h.rooms[groupID] = r
	return r
}

// Join subscribes an observer to a group's room.
func (h *Hub) Join(groupID string, sub Subscriber) {
	r := h.room(groupID)
	r.mu.Lock()
	r.subscribers[sub] = struct{}{}
	r.mu.Unlock()
}

// Leave removes an observer from a group's room. Leaving a room the
// observer never joined is a no-op.
func (h *Hub) Leave(groupID string, sub Subscriber) {
	h.mu.Lock()
	r, ok := h.rooms[groupID]
	h.mu.Unlock()
	if !ok {
		return
	}
	r.mu.Lock()
	delete(r.subscribers, sub)
	r.mu.Unlock()
}

// Publish delivers an event to every current observer of the group's
// room. It never blocks the caller: each delivery runs on its own
// goroutine and a failed write evicts the observer rather than applying
// backpressure.
func (h *Hub) Publish(groupID, name string, payload any) {
	h.mu.Lock()
	r, ok := h.rooms[groupID]
	h.mu.Unlock()
	if !ok {
		return
	}

	r.mu.Lock()
	snapshot := make([]Subscriber, 0, len(r.subscribers))
	for sub := range r.subscribers {
		snapshot = append(snapshot, sub)
	}
	r.mu.Unlock()

	ev := Event{Name: name, Payload: payload}
	for _, sub := range snapshot {
		go func(sub Subscriber) {
			if err := sub.Notify(ev); err != nil {
				h.logger.Debug().Err(err).Str("group_id", groupID).Msg("dropping room observer")
				h.Leave(groupID, sub)
			}
		}(sub)
	}
}

// Observers reports the current observer count for a group's room.
func (h *Hub) Observers(groupID string) int {
	h.mu.Lock()
	r, ok := h.rooms[groupID]
	h.mu.Unlock()
	if !ok {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}
