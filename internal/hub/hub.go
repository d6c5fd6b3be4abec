// Package hub fans chat messages out to connected stream clients. Rooms
// are in-process only; the database stays the source of truth for the
// message log.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Client receives marshalled events for one subscriber. The SSE handler
// drains it until it is closed.
type Client chan []byte

// Event is what subscribers receive.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Hub tracks subscribers per chat room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[Client]struct{}
}

func New() *Hub {
	return &Hub{rooms: make(map[uuid.UUID]map[Client]struct{})}
}

// Subscribe registers a client for a room and returns its channel.
func (h *Hub) Subscribe(roomID uuid.UUID) Client {
	client := make(Client, 16)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[Client]struct{})
	}
	h.rooms[roomID][client] = struct{}{}
	return client
}

// Unsubscribe removes a client and closes its channel. Empty rooms are
// dropped.
func (h *Hub) Unsubscribe(roomID uuid.UUID, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client)
	if len(clients) == 0 {
		delete(h.rooms, roomID)
	}
}

// Broadcast sends an event to every subscriber of a room. Sends are
// non-blocking; a subscriber with a full channel misses the event rather
// than stalling the sender.
func (h *Hub) Broadcast(roomID uuid.UUID, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		select {
		case client <- data:
		default:
		}
	}
}

// Subscribers reports the current subscriber count for a room.
func (h *Hub) Subscribers(roomID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
