package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/gorilla/websocket"

	"report-triage-service/metrics"
	"report-triage-service/models"
)

// WebSocketHub manages dashboard WebSocket connections and broadcasts
// newly submitted reports to every connected triage operator.
type WebSocketHub struct {
	clients    map[*WebSocketClient]bool
	broadcast  chan models.BroadcastMessage
	register   chan *WebSocketClient
	unregister chan *WebSocketClient
	mutex      sync.RWMutex
}

// WebSocketClient represents a single dashboard connection.
type WebSocketClient struct {
	hub    *WebSocketHub
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*WebSocketClient]bool),
		broadcast:  make(chan models.BroadcastMessage),
		register:   make(chan *WebSocketClient),
		unregister: make(chan *WebSocketClient),
	}
}

// Start runs the hub loop. Call it in its own goroutine.
func (h *WebSocketHub) Start() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			metrics.WebSocketClients.Inc()
			log.Infof("WebSocket client registered for user %s", client.userID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.WebSocketClients.Dec()
			}
			h.mutex.Unlock()
			log.Infof("WebSocket client unregistered for user %s", client.userID)

		case message := <-h.broadcast:
			payload := h.serializeMessage(message)
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow consumer, drop the connection.
					close(client.send)
					delete(h.clients, client)
					metrics.WebSocketClients.Dec()
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Stop disconnects all clients.
func (h *WebSocketHub) Stop() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

// RegisterClient attaches an upgraded connection to the hub.
func (h *WebSocketHub) RegisterClient(conn *websocket.Conn, userID string) {
	client := &WebSocketClient{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastMessage fans a message out to all connected clients.
func (h *WebSocketHub) BroadcastMessage(message models.BroadcastMessage) {
	h.broadcast <- message
}

// GetConnectedClientsCount returns the number of connected clients.
func (h *WebSocketHub) GetConnectedClientsCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *WebSocketHub) serializeMessage(message models.BroadcastMessage) []byte {
	data, err := json.Marshal(message)
	if err != nil {
		log.Errorf("Failed to serialize broadcast message: %v", err)
		return []byte("{}")
	}
	return data
}

// readPump drains the connection so pings/pongs and closes are handled.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Errorf("WebSocket read error for user %s: %v", c.userID, err)
			}
			break
		}
	}
}

// writePump pumps hub messages to the connection and keeps it alive.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
