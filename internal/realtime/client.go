package realtime

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/aura-webinar/landing/internal/store"
	"github.com/aura-webinar/landing/internal/view"
)

// Client to server events.
const (
	EventHashChange = "hashchange"
	EventAdminEntry = "admin_entry"
	EventCancel     = "cancel"
	EventLogin      = "login"
	EventLogout     = "logout"
	EventPreview    = "preview"
)

// Server to client events.
const (
	EventActive   = "active"
	EventView     = "view"
	EventNavigate = "navigate"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage is the WebSocket message envelope.
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// FragmentPayload carries a navigation fragment.
type FragmentPayload struct {
	Fragment string `json:"fragment"`
}

// ActivePayload reports the active configuration after a hashchange.
type ActivePayload struct {
	ActiveID string `json:"active_id"`
	Fragment string `json:"fragment"`
	Changed  bool   `json:"changed"`
}

// ViewPayload reports the page's screen.
type ViewPayload struct {
	Screen string `json:"screen"`
	Error  string `json:"error,omitempty"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Client is one open page. Each page walks its own screen flow.
type Client struct {
	ID       string
	hub      *Hub
	store    *store.Store
	selector *view.Selector
	conn     *websocket.Conn
	send     chan WSMessage
	logger   *zap.Logger
}

// NewClient builds a page client around conn. conn may be nil when only Handle is used.
func NewClient(hub *Hub, s *store.Store, gate *view.Gate, conn *websocket.Conn, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		ID:       uuid.New().String(),
		hub:      hub,
		store:    s,
		selector: view.NewSelector(gate),
		conn:     conn,
		send:     make(chan WSMessage, 64),
		logger:   logger,
	}
}

// ServeWs handles the WebSocket upgrade and runs the client loop.
func ServeWs(hub *Hub, s *store.Store, gate *view.Gate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		client := NewClient(hub, s, gate, conn, logger)
		hub.Register(client)
		hub.SendToClient(client.ID, EventActive, client.active(false))
		go client.writePump()
		client.readPump()
	}
}

func (c *Client) active(changed bool) ActivePayload {
	id := c.store.ActiveID()
	return ActivePayload{ActiveID: id, Fragment: store.Fragment(id), Changed: changed}
}

func (c *Client) view(err error) ViewPayload {
	p := ViewPayload{Screen: c.selector.Screen().String()}
	switch {
	case errors.Is(err, view.ErrInvalidCredentials):
		p.Error = view.MsgInvalidCredentials
	case err != nil:
		p.Error = err.Error()
	}
	return p
}

// Handle applies one inbound message and returns the reply. ok is false for unknown events.
func (c *Client) Handle(msg WSMessage) (reply WSMessage, ok bool) {
	var payload any
	switch msg.Event {
	case EventHashChange:
		var p FragmentPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return WSMessage{}, false
		}
		changed := c.store.HandleFragment(p.Fragment)
		active := c.active(changed)
		if changed {
			// the sender already shows this fragment; the other pages follow it
			c.hub.BroadcastExcept(c.ID, EventNavigate, FragmentPayload{Fragment: active.Fragment})
		}
		payload = active
	case EventAdminEntry:
		payload = c.view(c.selector.EnterAdmin())
	case EventCancel:
		payload = c.view(c.selector.Cancel())
	case EventLogout:
		payload = c.view(c.selector.Logout())
	case EventPreview:
		payload = c.view(c.selector.Preview())
	case EventLogin:
		var cred credentials
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &cred); err != nil {
				return WSMessage{}, false
			}
		}
		payload = c.view(c.selector.Login(cred.Username, cred.Password))
	default:
		return WSMessage{}, false
	}
	event := EventView
	if msg.Event == EventHashChange {
		event = EventActive
	}
	out, err := newMessage(event, payload)
	if err != nil {
		return WSMessage{}, false
	}
	return out, true
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
		return nil
	})

	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			break
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))

		reply, ok := c.Handle(msg)
		if !ok {
			c.logger.Debug("ignored websocket event", zap.String("client_id", c.ID), zap.String("event", msg.Event))
			continue
		}
		select {
		case c.send <- reply:
		default:
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(PingInterval * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
