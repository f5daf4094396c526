package devserver

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"collabchat/internal/event"
)

// client is one connected websocket with its joined rooms. Room membership
// is written by the read-loop goroutine and read by broadcasting HTTP
// handlers, so it carries its own lock.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	roomsMu sync.Mutex
	rooms   map[string]bool
}

func (c *client) join(room string) {
	c.roomsMu.Lock()
	c.rooms[room] = true
	c.roomsMu.Unlock()
}

func (c *client) leave(room string) {
	c.roomsMu.Lock()
	delete(c.rooms, room)
	c.roomsMu.Unlock()
}

func (c *client) inRoom(room string) bool {
	c.roomsMu.Lock()
	defer c.roomsMu.Unlock()
	return c.rooms[room]
}

func (c *client) send(ev event.Event) {
	data, err := event.Encode(ev)
	if err != nil {
		log.Printf("encode event: %v", err)
		return
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("write to client: %v", err)
	}
}

// Hub fans push events out to every client joined to a room.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Broadcast delivers an event to every member of its channel's room,
// including the originator; clients rely on the echo being idempotent.
func (h *Hub) Broadcast(ev event.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.inRoom(ev.Channel()) {
			c.send(ev)
		}
	}
}
