package extension

import (
	"github.com/notekit/cellview/internal/domain/directive"
	"github.com/notekit/cellview/internal/shared/types"
)

// HeightConstraint caps the rendered height of cells that declare a
// max-height directive, enabling fold-on-overflow instead of letting the
// editor grow without bound. Width is left unconstrained.
type HeightConstraint struct {
	widgets Lookup
}

// NewHeightConstraint creates the pass bound to a session's widget lookup
func NewHeightConstraint(widgets Lookup) *HeightConstraint {
	return &HeightConstraint{widgets: widgets}
}

// Name returns the pass identifier
func (p *HeightConstraint) Name() string {
	return "height_constraint"
}

// Apply sweeps the cells once. Cells without a directive are untouched;
// cells whose widget is not yet rendered are skipped, since rendering is
// the host's concern.
func (p *HeightConstraint) Apply(cells []types.Cell) {
	for _, cell := range cells {
		d, ok := directive.Resolve(cell.Metadata)
		if !ok {
			continue
		}

		h, ok := p.widgets.Find(cell.ID)
		if !ok {
			continue
		}

		h.SetFoldEnabled(true)
		h.SetSize(types.Unconstrained, d.MaxHeight)
	}
}
