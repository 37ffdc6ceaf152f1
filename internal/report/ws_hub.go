// Package report — WebSocket hub pushing recomputed insight summaries to
// dashboard clients.
package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/crickd/insights-engine/internal/metrics"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
)

// WSMessage is a JSON message sent to WebSocket clients after the ledger or
// snapshot for a match changes. Clients re-fetch the panels they render.
type WSMessage struct {
	Type            string `json:"type"` // "deliveries_ingested", "snapshot_updated"
	MatchID         string `json:"match_id"`
	DeliveryCount   int    `json:"delivery_count"`
	SnapshotVersion int64  `json:"snapshot_version,omitempty"`
	CurrentRunRate  string `json:"current_run_rate,omitempty"`
}

// wsClient is one connected dashboard. All writes to the connection go
// through the send channel and the client's writePump — gorilla connections
// support a single concurrent writer.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// WSHub manages WebSocket connections and broadcasts change notifications
// to all connected dashboard clients. The clients map is owned exclusively
// by the Run goroutine; registration, removal, and broadcast all go through
// its channels.
type WSHub struct {
	clients    map[*wsClient]bool
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient
}

// NewWSHub creates a new WebSocket hub.
func NewWSHub() *WSHub {
	return &WSHub{
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
	}
}

// Run starts the hub's main event loop. Must be called in a goroutine.
func (h *WSHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			metrics.WebSocketClients.Set(float64(len(h.clients)))
			slog.Info("ws client connected", "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			metrics.WebSocketClients.Set(float64(len(h.clients)))

		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Client too slow to drain its buffer; drop it.
					delete(h.clients, client)
					close(client.send)
				}
			}
			metrics.WebSocketClients.Set(float64(len(h.clients)))
		}
	}
}

// Broadcast sends a message to all connected clients.
func (h *WSHub) Broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- data:
	default:
		// Drop if buffer full to avoid blocking ingestion.
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true // Allow all origins during development.
	},
}

// HandleWS handles WebSocket upgrade requests at GET /api/v1/ws.
func (h *WSHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("ws upgrade failed", "err", err)
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, 16)}
	h.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

// readPump keeps the connection alive and detects disconnects.
func (h *WSHub) readPump(c *wsClient) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump is the connection's only writer: it drains the send channel and
// pings through proxies on a ticker.
func (h *WSHub) writePump(c *wsClient) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				// Hub dropped the client.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
