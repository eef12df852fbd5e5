package extension

import (
	"github.com/notekit/cellview/internal/domain/widget"
	"github.com/notekit/cellview/internal/shared/types"
)

// Lookup locates the live editor widget for a cell, if the host has
// rendered one. A session's widget registry satisfies this.
type Lookup interface {
	Find(cellID string) (widget.Handle, bool)
}

// Pass is a single presentation sweep over a document's cells.
//
// Implementations must visit every cell exactly once, must not mutate
// cell metadata, and must be idempotent: applying a pass twice yields
// the same widget state as applying it once.
type Pass interface {
	Name() string
	Apply(cells []types.Cell)
}
