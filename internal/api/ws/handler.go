package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/notekit/cellview/internal/domain/library"
	"github.com/notekit/cellview/internal/domain/session"
	"github.com/notekit/cellview/internal/infrastructure/logging"
	"github.com/notekit/cellview/internal/infrastructure/monitoring"
	"github.com/notekit/cellview/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Editor hosts connect cross-origin
	},
}

// Handler manages WebSocket connections from editor hosts
type Handler struct {
	sessions *session.Manager
	library  *library.Manager
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(sessions *session.Manager, lib *library.Manager, logger *logging.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		library:  lib,
		logger:   logger,
	}
}

// WithMetrics adds metrics tracking to the handler
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// wsConn serializes writes to a websocket connection. Widget commands
// can fire from pass runs while the read loop is sending replies.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	raw, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer raw.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	conn := &wsConn{conn: raw}
	state := &connState{}
	defer h.teardown(state)

	h.send(conn, gin.H{
		"type":    "system",
		"message": "Connected to cellview backend",
	})

	for {
		var msg types.WSMessage
		if err := conn.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", zap.Error(err))
			}
			break
		}

		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "open":
			h.handleOpen(conn, state, msg)
		case "widget_ready":
			h.handleWidgetReady(conn, state, msg)
		case "widget_gone":
			h.handleWidgetGone(state, msg)
		case "run_passes":
			h.handleRunPasses(conn, state)
		case "ping":
			h.send(conn, gin.H{"type": "pong"})
		default:
			h.sendError(conn, "unknown message type: "+msg.Type)
		}
	}
}

// connState tracks what one connection owns, for cleanup on disconnect
type connState struct {
	sessionID string
	attached  map[string]bool
}

func (h *Handler) handleOpen(conn *wsConn, state *connState, msg types.WSMessage) {
	var (
		s   *types.Session
		err error
	)

	switch {
	case msg.NotebookID != "":
		entry, ok := h.library.Get(msg.NotebookID)
		if !ok {
			h.sendError(conn, "notebook not found: "+msg.NotebookID)
			return
		}
		s, err = h.sessions.OpenNotebook(entry.Name, entry.Notebook())
	case len(msg.Content) > 0:
		s, err = h.sessions.Open(msg.Name, msg.Content)
	default:
		h.sendError(conn, "open requires notebook_id or content")
		return
	}
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	state.sessionID = s.ID
	state.attached = make(map[string]bool)

	cells, _ := h.sessions.Cells(s.ID)
	h.send(conn, gin.H{
		"type":    "session_opened",
		"session": s,
		"cells":   cells,
	})
}

func (h *Handler) handleWidgetReady(conn *wsConn, state *connState, msg types.WSMessage) {
	if state.sessionID == "" {
		h.sendError(conn, "no open session")
		return
	}

	handle := &editorHandle{
		cellID:  msg.CellID,
		conn:    conn,
		metrics: h.metrics,
	}
	if err := h.sessions.Attach(state.sessionID, msg.CellID, handle); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	state.attached[msg.CellID] = true

	// Late-rendered widgets still get their constraints applied
	if err := h.sessions.RunPasses(state.sessionID); err != nil {
		h.sendError(conn, err.Error())
	}
}

func (h *Handler) handleWidgetGone(state *connState, msg types.WSMessage) {
	if state.sessionID == "" {
		return
	}
	h.sessions.Detach(state.sessionID, msg.CellID)
	delete(state.attached, msg.CellID)
}

func (h *Handler) handleRunPasses(conn *wsConn, state *connState) {
	if state.sessionID == "" {
		h.sendError(conn, "no open session")
		return
	}
	if err := h.sessions.RunPasses(state.sessionID); err != nil {
		h.sendError(conn, err.Error())
	}
}

func (h *Handler) teardown(state *connState) {
	if state.sessionID == "" {
		return
	}
	for cellID := range state.attached {
		h.sessions.Detach(state.sessionID, cellID)
	}
}

func (h *Handler) send(conn *wsConn, v interface{}) {
	if err := conn.send(v); err != nil {
		h.logger.Warn("websocket write failed", zap.Error(err))
	}
}

func (h *Handler) sendError(conn *wsConn, message string) {
	h.send(conn, gin.H{
		"type":  "error",
		"error": message,
	})
}
