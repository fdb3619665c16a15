package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"IPService/internal/pkg/logger"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Hub tracks connected websocket clients and fans out messages to them
type Hub struct {
	clients  map[*Client]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// Client is one websocket connection. Writes are serialized per client.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewHub creates an empty hub. checkOrigin may be nil to accept any origin.
func NewHub(checkOrigin func(r *http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// ServeHTTP upgrades the connection and keeps it registered until the peer
// goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Failed to upgrade to WebSocket connection", logger.Err(err))
		return
	}

	client := &Client{conn: conn}
	h.add(client)
	defer h.remove(client)

	logger.Info("WebSocket client connected",
		logger.String("client_ip", r.RemoteAddr),
		logger.Int("clients", h.Len()))

	// Inbound messages are ignored; reading detects disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Len returns the number of connected clients
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastJSON marshals v once and sends it to every client
func (h *Hub) BroadcastJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to marshal WebSocket broadcast", logger.Err(err))
		return
	}
	h.Broadcast(data)
}

// Broadcast sends a text message to all clients, dropping those that fail
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(message); err != nil {
			logger.Debug("Dropping WebSocket client", logger.Err(err))
			h.remove(c)
		}
	}
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.conn.Close()
	}
	h.mu.Unlock()
}

func (c *Client) write(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, message)
}
