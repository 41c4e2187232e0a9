// Package realtime implements the push collaborator as an in-process
// websocket hub. Clients attach over HTTP, subscribe to channels, and
// receive JSON payloads published by the notification dispatcher.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"intersify/internal/notify"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 50 * time.Second
	sendBufferSize = 16
)

type client struct {
	conn     *websocket.Conn
	send     chan []byte
	channels map[string]struct{}
}

// Hub routes published payloads to subscribed websocket clients. A slow
// consumer whose send buffer fills is disconnected rather than allowed to
// stall publishers.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	logger   zerolog.Logger
	upgrader websocket.Upgrader
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Publish implements notify.Publisher. It never blocks on client I/O.
func (h *Hub) Publish(ctx context.Context, channel string, payload notify.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	message, err := json.Marshal(envelope{Channel: channel, Payload: payload})
	if err != nil {
		return err
	}

	h.mu.RLock()
	var stalled []*client
	for c := range h.clients {
		if _, ok := c.channels[channel]; !ok {
			continue
		}
		select {
		case c.send <- message:
		default:
			stalled = append(stalled, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		h.logger.Warn().Str("channel", channel).Msg("dropping slow websocket client")
		h.remove(c)
	}
	return nil
}

type envelope struct {
	Channel string         `json:"channel"`
	Payload notify.Payload `json:"payload"`
}

// Attach upgrades the request to a websocket and subscribes it to the given
// channels. The caller is responsible for having authorized the channel set.
func (h *Hub) Attach(w http.ResponseWriter, r *http.Request, channels []string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		channels: make(map[string]struct{}, len(channels)),
	}
	for _, channel := range channels {
		c.channels[channel] = struct{}{}
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	go h.readLoop(c)
	return nil
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) readLoop(c *client) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
