package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"musicbox/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MediaRoot is a directory served under one route with its own extension allowlist
type MediaRoot struct {
	Dir        string
	Extensions []string
}

// FileHandler streams audio files and thumbnails from disk
type FileHandler struct {
	fileService services.FileService
	songs       MediaRoot
	thumbnails  MediaRoot
	logger      *zap.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fs services.FileService, songs, thumbnails MediaRoot, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fs,
		songs:       songs,
		thumbnails:  thumbnails,
		logger:      logger,
	}
}

// StreamSong serves a file from the audio directory
func (h *FileHandler) StreamSong(c *gin.Context) {
	h.serve(c, h.songs)
}

// StreamThumbnail serves a file from the thumbnail directory
func (h *FileHandler) StreamThumbnail(c *gin.Context) {
	h.serve(c, h.thumbnails)
}

// serve streams one file with range and conditional request support
func (h *FileHandler) serve(c *gin.Context, root MediaRoot) {
	requestedPath := strings.TrimPrefix(c.Param("filepath"), "/")

	if err := h.fileService.ValidateFilePath(requestedPath); err != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "path security violation",
			"details": err.Error(),
		})
		return
	}

	fullPath, err := h.fileService.Resolve(root.Dir, requestedPath)
	if err != nil {
		if errors.Is(err, services.ErrPathTraversal) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "path traversal not allowed",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "server configuration error",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(requestedPath))
	if !allowedExt(root.Extensions, ext) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "file extension not allowed",
			"details": strings.Join(root.Extensions, ", ") + " files can be served here",
		})
		return
	}

	fileInfo, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "file not found",
				"path":  requestedPath,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "file access error",
			"details": err.Error(),
		})
		return
	}

	if fileInfo.IsDir() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is a directory, not a file",
		})
		return
	}

	file, err := os.Open(fullPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to open file",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	c.Header("Content-Type", h.fileService.GetContentType(fullPath))
	c.Header("Accept-Ranges", "bytes")
	c.Header("Cache-Control", "public, max-age=3600")

	// ServeContent handles Range, If-Modified-Since and HEAD.
	http.ServeContent(c.Writer, c.Request, fileInfo.Name(), fileInfo.ModTime(), file)
	h.logger.Debug("Served media file", zap.String("path", requestedPath), zap.Int("status", c.Writer.Status()))
}

func allowedExt(allowed []string, ext string) bool {
	for _, a := range allowed {
		if a == ext {
			return true
		}
	}
	return false
}
