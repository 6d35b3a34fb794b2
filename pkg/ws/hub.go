// Package ws carries the socket side of the API: JSON frames shaped
// {event, data}, request/response pairs keyed by event name (replies go
// out on "<event>-response"), and fire-and-forget broadcasts that keep
// client lists fresh.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
)

// Message is one socket frame.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type response struct {
	Event   string `json:"event"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HandlerFunc serves one request event and returns the response payload.
type HandlerFunc func(ctx context.Context, data json.RawMessage) (any, error)

type Connection struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *Connection) SendMessage(message []byte) error {
	select {
	case c.send <- message:
		return nil
	default:
		return websocket.ErrCloseSent
	}
}

func (c *Connection) Close() error {
	var err error
	c.once.Do(func() {
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

type HubOptions struct {
	Logger          *logrus.Logger
	CheckOrigin     func(r *http.Request) bool
	ReadBufferSize  int
	WriteBufferSize int
}

type Hub struct {
	logger   *logrus.Logger
	upgrader websocket.Upgrader

	mu          sync.RWMutex
	connections map[*Connection]struct{}
	handlers    map[string]HandlerFunc
}

func NewHub(opts *HubOptions) *Hub {
	return &Hub{
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  opts.ReadBufferSize,
			WriteBufferSize: opts.WriteBufferSize,
			CheckOrigin:     opts.CheckOrigin,
		},
		connections: make(map[*Connection]struct{}),
		handlers:    make(map[string]HandlerFunc),
	}
}

// HandleFunc registers the handler for a request event. Responses are
// written to "<event>-response".
func (h *Hub) HandleFunc(event string, fn HandlerFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[event] = fn
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("websocket upgrade failed")
		return
	}

	c := &Connection{
		conn: conn,
		send: make(chan []byte, 16),
	}
	h.mu.Lock()
	h.connections[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	h.readPump(r.Context(), c)
}

func (h *Hub) writePump(c *Connection) {
	for message := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.WithError(err).Debug("websocket write failed")
			return
		}
	}
}

func (h *Hub) readPump(ctx context.Context, c *Connection) {
	defer func() {
		h.mu.Lock()
		delete(h.connections, c)
		h.mu.Unlock()
		_ = c.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).Debug("websocket closed unexpectedly")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.reply(c, response{Event: "error", Success: false, Error: "invalid message frame"})
			continue
		}
		h.dispatch(ctx, c, msg)
	}
}

func (h *Hub) dispatch(ctx context.Context, c *Connection, msg Message) {
	h.mu.RLock()
	handler, ok := h.handlers[msg.Event]
	h.mu.RUnlock()

	if !ok {
		h.reply(c, response{Event: msg.Event + "-response", Success: false, Error: "unknown event"})
		return
	}

	data, err := handler(ctx, msg.Data)
	if err != nil {
		h.reply(c, response{Event: msg.Event + "-response", Success: false, Error: err.Error()})
		return
	}
	h.reply(c, response{Event: msg.Event + "-response", Success: true, Data: data})
}

func (h *Hub) reply(c *Connection, resp response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		h.logger.WithError(err).Error("failed to marshal socket response")
		return
	}
	if err := c.SendMessage(payload); err != nil {
		h.logger.WithError(err).Debug("failed to queue socket response")
	}
}

// Broadcast fans a fire-and-forget event out to every connection.
func (h *Hub) Broadcast(event string, data any) {
	payload, err := json.Marshal(map[string]any{"event": event, "data": data})
	if err != nil {
		h.logger.WithError(err).Error("failed to marshal broadcast")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if err := c.SendMessage(payload); err != nil {
			h.logger.WithError(err).Debug("dropping broadcast for slow connection")
		}
	}
}
