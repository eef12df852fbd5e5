// Package extension provides the pass framework applied to a document's
// cells when a session initializes.
//
// A pass is one idempotent sweep over the cell sequence that adjusts
// editor-widget presentation. Passes never mutate cell metadata, never
// return errors, and treat missing widgets as a silent no-op: they are
// best-effort cosmetic adjustments, not document transformations.
//
// Key Components:
//   - Pass: Single cell-sweep contract
//   - HeightConstraint: Caps editor height for cells carrying a
//     max-height directive and folds the overflow
//   - Runner: Ordered pass list bound to a session, fired by the
//     document-load hook and by explicit host re-runs
//
// Example Usage:
//
//	runner := extension.NewRunner(logger)
//	runner.Register(extension.NewHeightConstraint(widgets))
//	runner.DocumentLoaded(sessionID, cells)
package extension
