package ws

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/notekit/cellview/internal/domain/widget"
	"github.com/notekit/cellview/internal/infrastructure/monitoring"
	"github.com/notekit/cellview/internal/shared/types"
)

// editorHandle is the server-side proxy for one rendered editor widget.
// Setter calls translate to commands pushed over the connection; the
// last applied values are kept for state inspection.
type editorHandle struct {
	cellID  string
	conn    *wsConn
	metrics *monitoring.Metrics

	mu    sync.Mutex
	state widget.State
}

// SetFoldEnabled pushes a set_fold command to the widget
func (e *editorHandle) SetFoldEnabled(enabled bool) {
	e.mu.Lock()
	e.state.FoldEnabled = enabled
	e.mu.Unlock()

	e.push("set_fold", gin.H{
		"type":    "set_fold",
		"cell_id": e.cellID,
		"enabled": enabled,
	})
}

// SetSize pushes a set_size command to the widget. Unconstrained
// dimensions are sent as -1.
func (e *editorHandle) SetSize(width, height types.Length) {
	e.mu.Lock()
	e.state.Width = width
	e.state.Height = height
	e.mu.Unlock()

	e.push("set_size", gin.H{
		"type":    "set_size",
		"cell_id": e.cellID,
		"width":   int(width),
		"height":  int(height),
	})
}

// State returns the last applied widget state
func (e *editorHandle) State() widget.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.state
	s.CellID = e.cellID
	return s
}

func (e *editorHandle) push(command string, payload gin.H) {
	e.conn.send(payload)
	if e.metrics != nil {
		e.metrics.RecordWidgetCommand(command)
	}
}
