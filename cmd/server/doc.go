// Package main is the entry point for the cellview backend server.
//
// The backend hosts notebook document sessions for a browser-based
// editor front-end. It indexes .ipynb files from a library directory,
// opens sessions over REST or WebSocket, and pushes editor-widget
// commands (fold, size constraints) produced by extension passes back
// to the host.
//
// The server provides:
//   - REST API for library browsing and session lifecycle
//   - WebSocket bridge for live widget commands
//   - Prometheus metrics at /metrics
//   - Rate limiting and CORS for cross-origin hosts
//
// Configuration:
//   - Built-in defaults
//   - Optional YAML file (-config flag)
//   - Environment variables (highest precedence)
//
// Usage:
//
//	./server -config config.yaml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
