// Package http exposes the REST surface: library browsing, session
// lifecycle, and widget state inspection. The WebSocket bridge in
// api/ws carries the live widget commands; this package covers
// everything request-shaped.
package http
