package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go-shopkeeper/internal/event"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is a connection subscribed to one shop's feed.
type Client struct {
	ShopID uuid.UUID
	Conn   Conn
}

type message struct {
	shopID  uuid.UUID
	payload []byte
}

// Hub fans shop events out to the connections of that shop only.
type Hub struct {
	rooms      map[uuid.UUID]map[Conn]bool
	register   chan Client
	unregister chan Client
	broadcast  chan message
	done       chan struct{}
	mutex      sync.Mutex
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[Conn]bool),
		register:   make(chan Client),
		unregister: make(chan Client),
		broadcast:  make(chan message, 256),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run serves the hub until ctx is cancelled, then closes every connection.
// Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case c := <-h.register:
			h.mutex.Lock()
			room, ok := h.rooms[c.ShopID]
			if !ok {
				room = make(map[Conn]bool)
				h.rooms[c.ShopID] = room
			}
			room[c.Conn] = true
			h.mutex.Unlock()
			h.log.Debug().Str("shop_id", c.ShopID.String()).Msg("ws client connected")

		case c := <-h.unregister:
			h.mutex.Lock()
			h.remove(c.ShopID, c.Conn)
			h.mutex.Unlock()

		case msg := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.rooms[msg.shopID] {
				if err := conn.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
					h.remove(msg.shopID, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// remove must be called with the mutex held.
func (h *Hub) remove(shopID uuid.UUID, conn Conn) {
	room, ok := h.rooms[shopID]
	if !ok {
		return
	}
	if _, ok := room[conn]; ok {
		delete(room, conn)
		conn.Close()
	}
	if len(room) == 0 {
		delete(h.rooms, shopID)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for shopID, room := range h.rooms {
		for conn := range room {
			conn.Close()
		}
		delete(h.rooms, shopID)
	}
}

// Join subscribes c to its shop's feed. After the hub has stopped, c is closed
// and Join returns false.
func (h *Hub) Join(c Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		c.Conn.Close()
		return false
	}
}

// Leave unsubscribes c. It never blocks once the hub has stopped.
func (h *Hub) Leave(c Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Publish queues e for the connections of e.ShopID.
func (h *Hub) Publish(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- message{shopID: e.ShopID, payload: payload}:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ClientCount returns the number of live connections for a shop.
func (h *Hub) ClientCount(shopID uuid.UUID) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.rooms[shopID])
}
