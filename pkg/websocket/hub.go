package websocket

import (
	"encoding/json"
	"sync"
	"time"
)

// Hub tracks connected tracking clients grouped into per-ride rooms.
// Every client watches exactly one ride.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex
}

type Message struct {
	Type      string                 `json:"type"`
	RideID    string                 `json:"ride_id,omitempty"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true

	room := h.rooms[client.RideID]
	if room == nil {
		room = make(map[*Client]bool)
		h.rooms[client.RideID] = room
	}
	room[client] = true

	welcome := Message{
		Type:      "welcome",
		RideID:    client.RideID,
		Timestamp: time.Now().Unix(),
		Data: map[string]interface{}{
			"message": "Tracking started",
		},
	}
	h.sendToClient(client, welcome)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		if room, exists := h.rooms[client.RideID]; exists {
			delete(room, client)
			if len(room) == 0 {
				delete(h.rooms, client.RideID)
			}
		}
	}
}

// ActiveRides returns the ride ids with at least one watcher.
func (h *Hub) ActiveRides() []string {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	ids := make([]string, 0, len(h.rooms))
	for rideID := range h.rooms {
		ids = append(ids, rideID)
	}
	return ids
}

// SendToRide delivers a message to every watcher of the ride.
func (h *Hub) SendToRide(rideID string, message Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	room, exists := h.rooms[rideID]
	if !exists {
		return
	}

	data, _ := json.Marshal(message)
	for client := range room {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
			delete(room, client)
		}
	}
}

func (h *Hub) sendToClient(client *Client, message Message) {
	data, _ := json.Marshal(message)
	select {
	case client.send <- data:
	default:
		close(client.send)
		delete(h.clients, client)
	}
}
