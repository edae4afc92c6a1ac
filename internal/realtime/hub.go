package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/aura-webinar/landing/internal/store"
)

const (
	// PingInterval and PongWait are used for heartbeat.
	PingInterval = 30
	PongWait     = 60
)

// Hub tracks every open page and fans navigation out to all of them.
type Hub struct {
	clients map[string]*Client
	mu      sync.RWMutex
	logger  *zap.Logger
}

var _ store.Navigator = (*Hub)(nil)

// NewHub creates a new WebSocket hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

// Register adds a page connection.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()
	h.logger.Debug("page connected", zap.String("client_id", c.ID))
}

// Unregister removes a page connection and closes its send queue.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.ID]; ok {
		delete(h.clients, c.ID)
		close(c.send)
	}
	h.mu.Unlock()
	h.logger.Debug("page disconnected", zap.String("client_id", c.ID))
}

// Count returns the number of connected pages.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Navigate broadcasts the new fragment to every page.
func (h *Hub) Navigate(fragment string) {
	h.Broadcast(EventNavigate, FragmentPayload{Fragment: fragment})
}

// Broadcast sends a message to all pages. Slow pages whose buffer is full miss the message.
func (h *Hub) Broadcast(event string, payload any) {
	h.BroadcastExcept("", event, payload)
}

// BroadcastExcept sends a message to every page but skipID.
func (h *Hub) BroadcastExcept(skipID, event string, payload any) {
	msg, err := newMessage(event, payload)
	if err != nil {
		h.logger.Warn("encode broadcast failed", zap.String("event", event), zap.Error(err))
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		if id == skipID {
			continue
		}
		select {
		case c.send <- msg:
		default:
		}
	}
}

// SendToClient sends a message to one page.
func (h *Hub) SendToClient(clientID, event string, payload any) {
	msg, err := newMessage(event, payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func newMessage(event string, payload any) (WSMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return WSMessage{}, err
	}
	return WSMessage{Event: event, Data: data}, nil
}
