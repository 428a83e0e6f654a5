package server

import (
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"
)

// wsClient represents one connected browser tab.
type wsClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// changeEvent tells open tabs which task card to refresh.
type changeEvent struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

// Hub maintains the set of connected clients and fans change events out
// to all of them.
type Hub struct {
	clients    map[*wsClient]bool
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient
	logger     *slog.Logger
}

// NewHub creates a new hub instance. Run must be started on it.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		logger:     logger,
	}
}

// NotifyTaskUpdated broadcasts a task change to every connected client.
func (h *Hub) NotifyTaskUpdated(taskID int64) {
	payload, err := json.Marshal(changeEvent{Type: "task_updated", ID: taskID})
	if err != nil {
		h.logger.Error("marshal change event", "task_id", taskID, "error", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		// Nothing is draining fast enough; open tabs resync on reload.
		h.logger.Debug("dropping change event", "task_id", taskID)
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Send buffer full, assume the tab is gone.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}
