// Package types provides shared data structures for the cellview backend.
//
// This package defines core types used across all backend components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - Cell: Single unit of notebook content (code, markdown, raw)
//   - Notebook: Parsed nbformat 4.x document
//   - Length: Pixel dimension with an "unconstrained" sentinel
//   - Session: Snapshot of a live document session
//
// Request Types:
//   - OpenRequest: Session creation
//   - WSMessage: WebSocket communication with the host front-end
//
// State Management:
//   - SessionState: Session lifecycle enum (active, closed)
//   - Stats: Session manager statistics
package types
