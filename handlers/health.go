package handlers

import (
	"net/http"
	"os"
	"time"

	"musicbox/services"
	"musicbox/websocket"

	"github.com/gin-gonic/gin"
)

// Version is reported by the health endpoints
const Version = "1.0.0"

// HealthHandler handles health check endpoints
type HealthHandler struct {
	service string
	lister  services.Lister
	hub     websocket.Hub
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service string, lister services.Lister, hub websocket.Hub) *HealthHandler {
	return &HealthHandler{
		service: service,
		lister:  lister,
		hub:     hub,
	}
}

// HealthCheck returns the health status of the service
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   h.service,
		"version":   Version,
		"timestamp": time.Now().Unix(),
	})
}

// APIStatus reports where the library is read from
func (h *HealthHandler) APIStatus(c *gin.Context) {
	audioDir := h.lister.AudioDir()
	_, err := os.Stat(audioDir)

	c.JSON(http.StatusOK, gin.H{
		"message":          "Music player API is running",
		"audio_dir":        audioDir,
		"audio_dir_exists": err == nil,
		"ws_clients":       h.hub.ClientCount(),
	})
}
