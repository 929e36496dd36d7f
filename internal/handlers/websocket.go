package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fleetlink/signaling/internal/models"
	"github.com/fleetlink/signaling/internal/presence"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is handled by middleware
		return true
	},
}

// Signaling owns the relay's state: the presence registry and the hub of
// live connections. One instance is constructed at process start and
// shared by every partition's socket endpoint.
type Signaling struct {
	registry *presence.Registry
	hub      *Hub
}

func NewSignaling(registry *presence.Registry, hub *Hub) *Signaling {
	return &Signaling{registry: registry, hub: hub}
}

// Registry exposes the presence registry for the operator API.
func (s *Signaling) Registry() *presence.Registry {
	return s.registry
}

// Socket returns the upgrade handler for one partition. A connection is
// anonymous until its first registration event; everything it may do is
// scoped by the partition it connected to.
func (s *Signaling) Socket(ns Namespace) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}

		client := newClient(uuid.New().String(), conn)
		s.hub.add(client)
		log.Printf("User connected: %s (%s)", client.Handle, ns)

		go client.writePump()
		go s.readPump(client, ns)
	}
}

func (s *Signaling) readPump(c *Client, ns Namespace) {
	defer func() {
		s.hub.remove(c.Handle)
		s.registry.RemoveByHandle(c.Handle)
		c.Conn.Close()
		log.Printf("User disconnected: %s", c.Handle)
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var env models.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Printf("Failed to parse message from %s: %v", c.Handle, err)
			c.sendEvent(models.EventError, models.Status{Message: "malformed message"})
			continue
		}

		s.route(ns, c, env)
	}
}
