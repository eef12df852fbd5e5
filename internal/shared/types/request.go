package types

import "encoding/json"

// OpenRequest represents a session open request. Either NotebookID
// (open from the library) or Name+Content (inline notebook JSON) is set.
type OpenRequest struct {
	NotebookID string          `json:"notebook_id,omitempty"`
	Name       string          `json:"name,omitempty"`
	Content    json.RawMessage `json:"content,omitempty"`
}

// WSMessage represents a WebSocket message from the host front-end
type WSMessage struct {
	Type       string          `json:"type"`
	NotebookID string          `json:"notebook_id,omitempty"`
	Name       string          `json:"name,omitempty"`
	CellID     string          `json:"cell_id,omitempty"`
	Content    json.RawMessage `json:"content,omitempty"`
}
