package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/relnotes-feed/app/feed"
)

func NewHandler(builder BuilderInterface, sourceURL, version string) *Handler {
	return &Handler{
		builder:   builder,
		sourceURL: sourceURL,
		version:   version,
	}
}

// GetFeed builds a fresh document on every request.
func (h *Handler) GetFeed(c *gin.Context) {
	format, err := feed.ParseFormat(c.Param("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.builder.Build(c.Request.Context(), format)
	if err != nil {
		slog.Error("Feed build error", "format", format, "source", h.sourceURL, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to build feed"})
		return
	}

	c.Header("X-Feed-Entries", strconv.Itoa(result.Entries))
	c.Data(http.StatusOK, format.ContentType(), []byte(result.Document))
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	})
}

func (h *Handler) GetIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     "relnotes-feed",
		"version":     h.version,
		"description": "Atom and RSS feeds generated from an HTML release-notes page",
		"source":      h.sourceURL,
		"endpoints": map[string]string{
			"atom":   "/feeds/atom",
			"rss":    "/feeds/rss",
			"health": "/health",
		},
	})
}
