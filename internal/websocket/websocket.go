package websocket

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

// Event is the payload broadcast to all connected WebSocket clients
// when a record changes.
type Event struct {
	Type     string `json:"type"`
	Resource string `json:"resource"`
	ID       any    `json:"id"`
	Action   string `json:"action"`
}

// conn wraps a WebSocket connection with a mutex for thread-safe writes.
type conn struct {
	ws *ws.Conn
	mu sync.Mutex
}

// Hub maintains connected WebSocket clients and broadcasts change events.
type Hub struct {
	mu    sync.RWMutex
	conns map[*conn]struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*conn]struct{})}
}

func (h *Hub) register(c *conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
	if c.ws != nil {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("ws: close panic: %v", r)
			}
		}()
		_ = c.ws.Close()
	}
}

// Broadcast sends an event to all connected clients. Connections that
// fail the write are dropped.
func (h *Hub) Broadcast(evt Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}
	h.mu.RLock()
	conns := make([]*conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		c.mu.Lock()
		writeErr := func() (writeErr error) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("ws: write panic: %v", r)
					writeErr = fmt.Errorf("ws: write panic: %v", r)
				}
			}()
			_ = c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
			return c.ws.WriteMessage(ws.TextMessage, data)
		}()
		c.mu.Unlock()

		if writeErr != nil {
			h.unregister(c)
		}
	}
}

// BroadcastChange announces a create, update or delete on a resource.
func (h *Hub) BroadcastChange(resource, action string, id any) {
	h.Broadcast(Event{
		Type:     resource + "_" + action + "d",
		Resource: resource,
		ID:       id,
		Action:   action,
	})
}

// Upgrader is the default WebSocket upgrader.
var Upgrader = ws.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the connection and keeps it alive with pings.
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request) {
	wc, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade error: %v", err)
		return
	}

	c := &conn{ws: wc}
	hub.register(c)

	hub.mu.RLock()
	count := len(hub.conns)
	hub.mu.RUnlock()

	log.Printf("ws: client connected (%d total)", count)

	wc.SetReadDeadline(time.Now().Add(60 * time.Second))
	wc.SetPongHandler(func(string) error {
		wc.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			c.mu.Lock()
			err := wc.WriteControl(ws.PingMessage, nil, time.Now().Add(5*time.Second))
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}()

	for {
		if _, _, err := wc.ReadMessage(); err != nil {
			break
		}
	}
	hub.unregister(c)
	log.Printf("ws: client disconnected")
}
