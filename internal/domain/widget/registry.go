// Package widget tracks the live editor widgets the host front-end has
// rendered for a document session.
package widget

import (
	"sync"

	"github.com/notekit/cellview/internal/shared/types"
)

// Handle is a cell's live editor widget, owned and rendered by the host.
// Implementations forward the mutations to the host's editor API.
type Handle interface {
	// SetFoldEnabled toggles fold-on-overflow for the widget
	SetFoldEnabled(enabled bool)
	// SetSize constrains the widget's dimensions. Pass
	// types.Unconstrained for a dimension that should be left alone.
	SetSize(width, height types.Length)
}

// State is the last constraint applied to an editor widget
type State struct {
	CellID      string       `json:"cell_id"`
	FoldEnabled bool         `json:"fold_enabled"`
	Width       types.Length `json:"width"`
	Height      types.Length `json:"height"`
}

// Reporter is implemented by handles that can report their applied state
type Reporter interface {
	State() State
}

// Registry maps cell IDs to rendered editor widgets for one session.
// The host attaches a handle when it renders a cell and detaches it when
// the widget is torn down; lookups for unrendered cells simply miss.
type Registry struct {
	mu      sync.RWMutex
	handles map[string]Handle // Protected by mu
}

// NewRegistry creates an empty widget registry
func NewRegistry() *Registry {
	return &Registry{
		handles: make(map[string]Handle),
	}
}

// Attach registers the editor widget for a cell, replacing any previous
// handle for the same cell.
func (r *Registry) Attach(cellID string, h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles[cellID] = h
}

// Detach removes the editor widget for a cell
func (r *Registry) Detach(cellID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, cellID)
}

// Find returns the editor widget for a cell, if rendered
func (r *Registry) Find(cellID string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handles[cellID]
	return h, ok
}

// Count returns the number of attached widgets
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

// States returns a snapshot of the applied state of every attached
// widget that can report one.
func (r *Registry) States() []State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := make([]State, 0, len(r.handles))
	for _, h := range r.handles {
		if reporter, ok := h.(Reporter); ok {
			states = append(states, reporter.State())
		}
	}
	return states
}
