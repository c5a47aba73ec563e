package handlers

import (
	"musicbox/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LibraryWSHandler upgrades connections that want pushed library snapshots
type LibraryWSHandler struct {
	hub    websocket.Hub
	logger *zap.Logger
}

// NewLibraryWSHandler creates a new websocket handler
func NewLibraryWSHandler(hub websocket.Hub, logger *zap.Logger) *LibraryWSHandler {
	return &LibraryWSHandler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection sends the current snapshot, then keeps the client
// subscribed to snapshots triggered by any client's refresh.
func (h *LibraryWSHandler) HandleConnection(c *gin.Context) {
	upgrader := websocket.GetUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := websocket.NewClient(h.hub, conn, h.logger)
	client.Queue(h.hub.Snapshot(c.Request.Context()))
	h.hub.RegisterClient(client)

	client.StartPumps()
}
