package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/nsdom/pkg/dom/memdom"
)

// MessageType is the type of a mutation stream message.
type MessageType string

const (
	// MessageRender carries the mutations of one render.
	MessageRender MessageType = "render"

	// MessageClosed is sent before the server drops a container.
	MessageClosed MessageType = "closed"
)

// Message is sent to mutation stream clients.
type Message struct {
	Type      MessageType       `json:"type"`
	Container string            `json:"container"`
	Strategy  string            `json:"strategy,omitempty"`
	Mutations []memdom.Mutation `json:"mutations,omitempty"`
}

// Hub fans render mutations out to WebSocket clients, grouped by
// container id.
type Hub struct {
	clients  map[string]map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHub creates a Hub that accepts connections passing checkOrigin.
func NewHub(checkOrigin func(r *http.Request) bool, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[string]map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

// Serve upgrades the request and streams messages for container until the
// client disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, container string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "container", container, "error", err)
		return
	}

	h.mu.Lock()
	if h.clients[container] == nil {
		h.clients[container] = make(map[*websocket.Conn]bool)
	}
	h.clients[container][conn] = true
	h.mu.Unlock()
	h.logger.Debug("stream opened", "container", container)

	// Clients only listen; reading detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(container, conn)
	h.logger.Debug("stream closed", "container", container)
}

func (h *Hub) remove(container string, conn *websocket.Conn) {
	h.mu.Lock()
	if set := h.clients[container]; set != nil {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.clients, container)
		}
	}
	h.mu.Unlock()
	conn.Close()
}

// Broadcast sends msg to every client of msg.Container. Clients that
// fail to receive it are dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients[msg.Container]))
	for conn := range h.clients[msg.Container] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(msg.Container, conn)
		}
	}
}

// ClientCount returns the number of clients following container.
func (h *Hub) ClientCount(container string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[container])
}

// CloseContainer sends MessageClosed to the container's clients and
// disconnects them.
func (h *Hub) CloseContainer(container string) {
	h.Broadcast(Message{Type: MessageClosed, Container: container})

	h.mu.Lock()
	set := h.clients[container]
	delete(h.clients, container)
	h.mu.Unlock()

	for conn := range set {
		conn.Close()
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, set := range h.clients {
		for conn := range set {
			conn.Close()
		}
		delete(h.clients, id)
	}
}
