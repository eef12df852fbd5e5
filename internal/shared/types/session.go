package types

import "time"

// SessionState represents document session lifecycle states
type SessionState string

const (
	SessionActive SessionState = "active"
	SessionClosed SessionState = "closed"
)

// Session is a snapshot of a live document session
type Session struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	State     SessionState `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	CellCount int          `json:"cell_count"`
	Widgets   int          `json:"widgets"`
}

// Stats contains session manager statistics
type Stats struct {
	TotalSessions  int `json:"total_sessions"`
	ActiveSessions int `json:"active_sessions"`
	TotalCells     int `json:"total_cells"`
	TotalWidgets   int `json:"total_widgets"`
}
