package websocket

import (
	"context"
	"sync"
	"time"

	"musicbox/types"

	"go.uber.org/zap"
)

// SnapshotFunc lists the library and wraps it as a message
type SnapshotFunc func(ctx context.Context) types.LibraryMessage

// Hub interface defines the methods for managing WebSocket connections
type Hub interface {
	Run(ctx context.Context)
	Broadcast(message types.LibraryMessage)
	Refresh(ctx context.Context)
	Snapshot(ctx context.Context) types.LibraryMessage
	RegisterClient(client *Client)
	UnregisterClient(client *Client)
	ClientCount() int
}

// hub maintains the set of active clients and broadcasts library snapshots to them
type hub struct {
	clients map[*Client]bool

	broadcast  chan types.LibraryMessage
	register   chan *Client
	unregister chan *Client

	snapshot SnapshotFunc
	logger   *zap.Logger
	done     chan struct{}
	mu       sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub(snapshot SnapshotFunc, logger *zap.Logger) Hub {
	return &hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan types.LibraryMessage, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		snapshot:   snapshot,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main event loop; it returns when ctx is done
func (h *hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("WebSocket client connected", zap.String("client", client.id))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("WebSocket client disconnected", zap.String("client", client.id))

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow consumer
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a message for every connected client
func (h *hub) Broadcast(message types.LibraryMessage) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("WebSocket broadcast channel full, dropping message", zap.String("type", message.Type))
	}
}

// Snapshot lists the library now
func (h *hub) Snapshot(ctx context.Context) types.LibraryMessage {
	return h.snapshot(ctx)
}

// Refresh lists the library and pushes the result to everyone
func (h *hub) Refresh(ctx context.Context) {
	h.Broadcast(h.snapshot(ctx))
}

// RegisterClient registers a new client with the hub
func (h *hub) RegisterClient(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// UnregisterClient unregisters a client from the hub
func (h *hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NewSnapshotMessage wraps a listing result as a library message
func NewSnapshotMessage(tracks []types.Track, err error) types.LibraryMessage {
	if err != nil {
		return types.LibraryMessage{
			Type:      types.MessageError,
			Message:   err.Error(),
			Timestamp: time.Now(),
		}
	}
	return types.LibraryMessage{
		Type:      types.MessageSnapshot,
		Tracks:    tracks,
		Count:     len(tracks),
		Timestamp: time.Now(),
	}
}
