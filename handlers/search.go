package handlers

import (
	"net/http"
	"strings"

	"musicbox/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler handles search endpoints
type SearchHandler struct {
	lister services.Lister
	logger *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(lister services.Lister, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		lister: lister,
		logger: logger,
	}
}

// Search filters the library by track name
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "query parameter 'q' is required",
		})
		return
	}

	results, err := h.lister.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Search failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "search failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}
