package handlers

import (
	"errors"
	"net/http"

	"musicbox/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SongsHandler serves the track listing as HTML and JSON
type SongsHandler struct {
	lister           services.Lister
	defaultThumbnail string
	logger           *zap.Logger
}

// NewSongsHandler creates a new songs handler
func NewSongsHandler(lister services.Lister, defaultThumbnail string, logger *zap.Logger) *SongsHandler {
	return &SongsHandler{
		lister:           lister,
		defaultThumbnail: defaultThumbnail,
		logger:           logger,
	}
}

// Index renders the HTML page
func (h *SongsHandler) Index(c *gin.Context) {
	tracks, err := h.lister.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Error listing songs", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to list songs")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"songs":            tracks,
		"count":            len(tracks),
		"defaultThumbnail": h.defaultThumbnail,
	})
}

// List returns the bare JSON array of tracks
func (h *SongsHandler) List(c *gin.Context) {
	tracks, err := h.lister.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Error listing songs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to list songs",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, tracks)
}

// Get returns a single track by its file name
func (h *SongsHandler) Get(c *gin.Context) {
	filename := c.Param("filename")

	track, err := h.lister.Find(c.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "song not found",
			})
			return
		}
		h.logger.Error("Error finding song", zap.String("filename", filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to list songs",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, track)
}
