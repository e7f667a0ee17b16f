package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"inventory-tracker/internal/events"
)

// Hub broadcasts stock events to every connected websocket client.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	log        *slog.Logger
	done       chan struct{}
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
		log:        log,
		done:       make(chan struct{}),
	}
}

// Run serves register, unregister and broadcast requests until ctx is done.
// It must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Debug("WS client connected", slog.Int("clients", h.ClientCount()))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// register hands conn to the hub. It reports false once the hub has stopped.
func (h *Hub) register(conn *websocket.Conn) bool {
	select {
	case h.Register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// unregister returns immediately once the hub has stopped; Run closed every
// connection on its way out.
func (h *Hub) unregister(conn *websocket.Conn) {
	select {
	case h.Unregister <- conn:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.Clients {
		conn.Close()
		delete(h.Clients, conn)
	}
}

// Message is the frame pushed to websocket clients.
type Message struct {
	Type  string       `json:"type"`
	Event events.Event `json:"event"`
}

// Publish queues evt for broadcast. It never blocks: when the queue is full
// the frame is dropped and an error returned.
func (h *Hub) Publish(_ context.Context, evt events.Event) error {
	msg, err := json.Marshal(Message{Type: "stock_update", Event: evt})
	if err != nil {
		return fmt.Errorf("marshal ws message: %w", err)
	}
	select {
	case h.Broadcast <- msg:
		return nil
	default:
		return fmt.Errorf("ws broadcast queue full, dropped %s", evt.Type)
	}
}
