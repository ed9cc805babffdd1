// Package network exposes the running session over WebSocket and HTTP.
package network

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/PatrikSjolin/hollowheart/internal/engine"
	"github.com/PatrikSjolin/hollowheart/internal/events"
	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
	"github.com/PatrikSjolin/hollowheart/internal/platform/metrics"
)

// Hub maintains the set of active clients and broadcasts narration to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex

	session      *engine.Session
	metrics      *metrics.Collector
	logger       *logger.Logger
	clientBuffer int
	upgrader     websocket.Upgrader
}

// NewHub initializes a new WebSocket Hub around the session.
func NewHub(session *engine.Session, m *metrics.Collector, log *logger.Logger, broadcastBuffer, clientBuffer int) *Hub {
	return &Hub{
		broadcast:    make(chan []byte, broadcastBuffer),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		done:         make(chan struct{}),
		clients:      make(map[*Client]bool),
		session:      session,
		metrics:      m,
		logger:       log,
		clientBuffer: clientBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // browser frontends are served from another origin in dev
			},
		},
	}
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("WebSocket Hub shutting down.")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.metrics.RecordWSConnection(1)
			h.logger.Info("New WebSocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.metrics.RecordWSConnection(-1)
				h.logger.Info("WebSocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					h.metrics.RecordWSMessage(false)
				default:
					close(client.send)
					delete(h.clients, client)
					h.metrics.RecordWSConnection(-1)
					h.metrics.RecordWSError()
				}
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BroadcastLine serializes a narration line and queues it for every client.
// Lines are dropped when the broadcast queue is full; clients recover them
// through the log replay endpoint.
func (h *Hub) BroadcastLine(line events.LogLine) {
	payload, err := json.Marshal(line)
	if err != nil {
		h.logger.Error("Failed to serialize log line for WebSocket broadcast: " + err.Error())
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.metrics.RecordWSError()
	}
}

// StreamLog forwards every new narration line to the clients until ctx is
// cancelled.
func (h *Hub) StreamLog(ctx context.Context, el *events.EventLog, buffer int) {
	lines, cancel := el.Subscribe(buffer)
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-lines:
				if !ok {
					return
				}
				h.BroadcastLine(line)
			}
		}
	}()
}

// ServeWS upgrades the request and starts the client's pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.metrics.RecordWSError()
		h.logger.Error("Failed to upgrade websocket connection: " + err.Error())
		return
	}

	client := NewClient(h, conn, h.clientBuffer)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
