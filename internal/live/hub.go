package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MessageType is the type of a websocket message.
type MessageType string

const (
	MessageSnapshot MessageType = "snapshot"
	MessagePatches  MessageType = "patches"
)

// Message is sent to websocket clients. The first message of a connection
// is a snapshot; clients drop patch frames with a Seq not above it.
type Message struct {
	Type     MessageType `json:"type"`
	Snapshot *Snapshot   `json:"snapshot,omitempty"`
	Frame    *Frame      `json:"frame,omitempty"`
}

type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages websocket clients of the patch stream.
type Hub struct {
	clients  map[*client]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger

	// snapshot returns the state sent to a client when it connects.
	snapshot func() Snapshot

	// onCount is called with the number of clients whenever it changes.
	onCount func(n int)
}

// NewHub creates a hub. snapshot provides the state sent to new clients.
func NewHub(snapshot func() Snapshot, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:  make(map[*client]bool),
		snapshot: snapshot,
		logger:   logger,
		onCount:  func(int) {},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the request and streams messages until the client
// disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}

	// Frames broadcast before the snapshot is written wait on c.mu.
	c.mu.Lock()
	h.add(c)
	snap := h.snapshot()
	data, err := json.Marshal(Message{Type: MessageSnapshot, Snapshot: &snap})
	if err == nil {
		err = conn.WriteMessage(websocket.TextMessage, data)
	}
	c.mu.Unlock()
	if err != nil {
		h.remove(c)
		return
	}
	h.logger.Info("client connected", "client", c.id, "seq", snap.Seq)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(c)
	h.logger.Info("client disconnected", "client", c.id)
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()
	h.onCount(n)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()
	c.conn.Close()
	if ok {
		h.onCount(n)
	}
}

// Broadcast sends frame to all clients. Clients that fail are dropped.
func (h *Hub) Broadcast(frame Frame) {
	data, err := json.Marshal(Message{Type: MessagePatches, Frame: &frame})
	if err != nil {
		h.logger.Error("encoding frame", "seq", frame.Seq, "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(data); err != nil {
			h.logger.Debug("dropping client", "client", c.id, "error", err)
			h.remove(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
	h.onCount(0)
}
