package handlers

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fleetlink/signaling/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	sendBufferSize = 256
)

// Client is one live transport session. Its handle is the server-assigned
// identity everything else (registry, router) refers to; it dies with the
// connection and is never reused.
type Client struct {
	Handle string
	Conn   *websocket.Conn
	Send   chan []byte
}

func newClient(handle string, conn *websocket.Conn) *Client {
	return &Client{
		Handle: handle,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
	}
}

// enqueue hands a marshaled frame to the write pump without blocking. A
// slow consumer loses frames rather than stalling the dispatcher.
func (c *Client) enqueue(data []byte) {
	select {
	case c.Send <- data:
	default:
		log.Printf("Dropping frame for %s, send buffer full", c.Handle)
	}
}

func (c *Client) sendEvent(event models.Event, payload any) {
	data, err := encodeEnvelope(event, payload)
	if err != nil {
		log.Printf("Failed to marshal %s: %v", event, err)
		return
	}
	c.enqueue(data)
}

func encodeEnvelope(event models.Event, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = data
	}
	return json.Marshal(models.Envelope{Event: event, Data: raw})
}

// Hub tracks every live connection by handle so that routed messages,
// wherever their handle came from, go through one delivery path.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.Handle] = c
}

func (h *Hub) remove(handle string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, handle)
}

func (h *Hub) get(handle string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[handle]
	return c, ok
}

// Deliver forwards one event to the connection behind handle. A vanished
// or stale handle is a logged no-op; signaling is best-effort and the
// registry heals on the next disconnect.
func (h *Hub) Deliver(handle string, event models.Event, payload any) {
	c, ok := h.get(handle)
	if !ok {
		log.Printf("No connection for handle %s, dropping %s", handle, event)
		return
	}
	c.sendEvent(event, payload)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Failed to write message: %v", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
