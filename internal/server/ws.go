package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	log "github.com/echocat/slf4g"
	"github.com/gorilla/websocket"
)

// broadcastInterval is how often the hub checks for a new snapshot.
const broadcastInterval = 33 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Hub pushes every new presenter snapshot to connected websocket clients.
type Hub struct {
	source  Source
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewHub creates a Hub reading from source. Call Run to start broadcasting.
func NewHub(source Source) *Hub {
	return &Hub{
		source:  source,
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP upgrades the connection and keeps it registered until the
// client disconnects. The current snapshot is sent right away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("Websocket upgrade failed.")
		return
	}
	defer conn.Close()

	if snap := h.source.Snapshot(); snap != nil {
		if msg, err := json.Marshal(snap); err == nil {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run broadcasts snapshots until ctx is cancelled. A snapshot is sent once,
// when its frame number changes.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()

	var lastFrame uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		snap := h.source.Snapshot()
		if snap == nil || snap.Frame == lastFrame || h.Clients() == 0 {
			continue
		}
		lastFrame = snap.Frame

		msg, err := json.Marshal(snap)
		if err != nil {
			log.WithError(err).Warn("Failed to encode snapshot.")
			continue
		}
		h.broadcast(msg)
	}
}

func (h *Hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
