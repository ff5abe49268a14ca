package websocket

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub maintains the set of active clients and their room subscriptions.
// Rooms are named channels ("party:<id>", "games:<game id>"); subscription
// state is ephemeral and dies with the connection. Delivery is fire and
// forget to whoever is subscribed at emit time.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Room subscriptions (room name -> clients)
	rooms map[string]map[*Client]bool

	// Guards clients and rooms
	roomsMux sync.RWMutex

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	logger *zap.SugaredLogger
}

// Event is the wire format for everything the hub delivers.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// NewHub creates a new hub instance
func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.roomsMux.Lock()
			h.clients[client] = true
			h.roomsMux.Unlock()
		case client := <-h.unregister:
			h.roomsMux.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				// Remove client from all rooms
				for room, clients := range h.rooms {
					if _, ok := clients[client]; ok {
						delete(h.rooms[room], client)
						// Clean up empty rooms
						if len(h.rooms[room]) == 0 {
							delete(h.rooms, room)
						}
					}
				}
			}
			h.roomsMux.Unlock()
		}
	}
}

// Join subscribes a client to a room. Idempotent.
func (h *Hub) Join(client *Client, room string) {
	h.roomsMux.Lock()
	defer h.roomsMux.Unlock()

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
}

// Leave unsubscribes a client from a room. Idempotent.
func (h *Hub) Leave(client *Client, room string) {
	h.roomsMux.Lock()
	defer h.roomsMux.Unlock()

	if _, ok := h.rooms[room]; ok {
		delete(h.rooms[room], client)
		// Clean up empty rooms
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Emit delivers an event to every current subscriber of a room.
func (h *Hub) Emit(room string, event string, payload interface{}) {
	message, err := json.Marshal(Event{Event: event, Payload: payload})
	if err != nil {
		h.logger.Errorw("event marshal failed", "event", event, "error", err)
		return
	}
	h.emitRaw(room, message)
}

func (h *Hub) emitRaw(room string, message []byte) {
	h.roomsMux.RLock()
	defer h.roomsMux.RUnlock()

	if clients, ok := h.rooms[room]; ok {
		for client := range clients {
			select {
			case client.send <- message:
			default:
				// Slow consumer; drop the event rather than block the room.
			}
		}
	}
}

// Subscribers reports how many connections are currently in a room.
func (h *Hub) Subscribers(room string) int {
	h.roomsMux.RLock()
	defer h.roomsMux.RUnlock()
	return len(h.rooms[room])
}
