// Package notebook provides parsing of nbformat 4.x notebook documents.
//
// The parser converts raw .ipynb JSON into the typed document model the
// rest of the backend works with.
//
// Key Components:
//   - Parser: ipynb JSON to Notebook transformation
//   - Multiline source normalization (line arrays joined verbatim)
//   - Deterministic IDs for cells missing an "id" field
//
// Notebook Structure:
//   - nbformat / nbformat_minor: format version (major 4 required)
//   - metadata: Notebook-level metadata, preserved verbatim
//   - cells: Ordered cell list with type, source and metadata
//
// Example:
//
//	nb, err := notebook.Parse(content)
package notebook
