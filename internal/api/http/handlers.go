package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notekit/cellview/internal/domain/library"
	"github.com/notekit/cellview/internal/domain/session"
	"github.com/notekit/cellview/internal/infrastructure/monitoring"
	"github.com/notekit/cellview/internal/shared/types"
)

// Handlers holds the REST handler dependencies
type Handlers struct {
	sessions *session.Manager
	library  *library.Manager
	metrics  *monitoring.Metrics
}

// NewHandlers creates REST handlers
func NewHandlers(sessions *session.Manager, lib *library.Manager) *Handlers {
	return &Handlers{
		sessions: sessions,
		library:  lib,
	}
}

// WithMetrics adds metrics tracking to the handlers
func (h *Handlers) WithMetrics(metrics *monitoring.Metrics) *Handlers {
	h.metrics = metrics
	return h
}

// Root handles GET /
func (h *Handlers) Root(c *gin.Context) {
	stats := h.sessions.Stats()
	c.JSON(http.StatusOK, gin.H{
		"service":   "cellview-backend",
		"status":    "running",
		"sessions":  stats.ActiveSessions,
		"notebooks": h.library.Count(),
	})
}

// Health handles GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"stats":  h.sessions.Stats(),
	})
}

// ListNotebooks handles GET /notebooks
func (h *Handlers) ListNotebooks(c *gin.Context) {
	entries := h.library.List()
	c.JSON(http.StatusOK, gin.H{
		"notebooks": entries,
		"count":     len(entries),
	})
}

// GetNotebook handles GET /notebooks/:id
func (h *Handlers) GetNotebook(c *gin.Context) {
	entry, ok := h.library.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "notebook not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notebook": entry,
		"cells":    entry.Notebook().Cells,
	})
}

// ReloadLibrary handles POST /notebooks/reload
func (h *Handlers) ReloadLibrary(c *gin.Context) {
	if err := h.library.Load(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if h.metrics != nil {
		h.metrics.SetLibraryNotebooks(h.library.Count())
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "reloaded",
		"count":  h.library.Count(),
	})
}

// OpenSession handles POST /sessions
func (h *Handlers) OpenSession(c *gin.Context) {
	var req types.OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var (
		s   *types.Session
		err error
	)
	switch {
	case req.NotebookID != "":
		entry, ok := h.library.Get(req.NotebookID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "notebook not found: " + req.NotebookID})
			return
		}
		s, err = h.sessions.OpenNotebook(entry.Name, entry.Notebook())
	case len(req.Content) > 0:
		s, err = h.sessions.Open(req.Name, req.Content)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "notebook_id or content is required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": s})
}

// ListSessions handles GET /sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions := h.sessions.List()
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// GetSession handles GET /sessions/:id
func (h *Handlers) GetSession(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s})
}

// GetCells handles GET /sessions/:id/cells
func (h *Handlers) GetCells(c *gin.Context) {
	cells, ok := h.sessions.Cells(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cells": cells,
		"count": len(cells),
	})
}

// RunPasses handles POST /sessions/:id/passes
func (h *Handlers) RunPasses(c *gin.Context) {
	if err := h.sessions.RunPasses(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "passes_run"})
}

// WidgetStates handles GET /sessions/:id/widgets
func (h *Handlers) WidgetStates(c *gin.Context) {
	states, ok := h.sessions.WidgetStates(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"widgets": states,
		"count":   len(states),
	})
}

// CloseSession handles DELETE /sessions/:id
func (h *Handlers) CloseSession(c *gin.Context) {
	if !h.sessions.Close(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}
