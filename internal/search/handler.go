package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/v1/search
// --------------------------------------------------
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.service.Search(c.Request.Context(), req, nil)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// POST /api/v1/search/stream (SSE)
// --------------------------------------------------
func (h *Handler) SearchStream(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	emit := func(event map[string]any) {
		payload, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
		flusher.Flush()
	}

	resp, err := h.service.Search(c.Request.Context(), req, func(msg string) {
		emit(map[string]any{"type": "PROGRESS", "purpose": msg})
	})
	if err != nil {
		emit(map[string]any{"type": "ERROR", "message": err.Error()})
		return
	}

	emit(map[string]any{"type": "RESULT", "result": resp})
}

// --------------------------------------------------
// GET /api/v1/search/:id
// --------------------------------------------------
func (h *Handler) GetSearch(c *gin.Context) {
	searchID := c.Param("id")

	resp, err := h.service.GetSearch(c.Request.Context(), searchID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "search not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load search"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// POST /admin/cache/purge
// --------------------------------------------------
func (h *Handler) PurgeCache(c *gin.Context) {
	deleted, err := h.service.PurgeExpiredCache(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cache purge failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// --------------------------------------------------
// GET /api/v1/history
// --------------------------------------------------
func (h *Handler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"searches": items})
}
