// Package ws bridges document sessions to browser editor widgets.
//
// Each WebSocket connection serves one front-end host. The host opens a
// session, announces editor widgets as cells render, and receives
// widget commands (set_fold, set_size) pushed by the extension passes.
// Widget state lives server-side; the connection only carries commands
// and lifecycle events.
package ws
