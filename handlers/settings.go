package handlers

import (
	"net/http"

	"musicbox/config"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the effective configuration
type SettingsHandler struct {
	cfg *config.Config
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{cfg: cfg}
}

// GetSettings returns the library and server settings in effect.
// Settings are read-only at runtime; change them through the environment
// or the config file and restart.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"library":             h.cfg.Library,
		"server":              h.cfg.Server,
		"defaultThumbnailUrl": h.cfg.Library.DefaultThumbnailURL(),
		"thumbnailDir":        h.cfg.Library.ThumbnailRoot(),
	})
}
