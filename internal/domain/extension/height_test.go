package extension

import (
	"reflect"
	"testing"

	"github.com/notekit/cellview/internal/domain/widget"
	"github.com/notekit/cellview/internal/shared/types"
)

// recordingHandle captures every widget call and the resulting state
type recordingHandle struct {
	foldCalls []bool
	sizeCalls [][2]types.Length
	state     widget.State
}

func (h *recordingHandle) SetFoldEnabled(enabled bool) {
	h.foldCalls = append(h.foldCalls, enabled)
	h.state.FoldEnabled = enabled
}

func (h *recordingHandle) SetSize(width, height types.Length) {
	h.sizeCalls = append(h.sizeCalls, [2]types.Length{width, height})
	h.state.Width = width
	h.state.Height = height
}

func (h *recordingHandle) State() widget.State {
	return h.state
}

func constrainedCell(id string, height float64) types.Cell {
	return types.Cell{
		ID:   id,
		Type: types.CellCode,
		Metadata: map[string]interface{}{
			"nbgrader": map[string]interface{}{"max_height": height},
		},
	}
}

func plainCell(id string) types.Cell {
	return types.Cell{ID: id, Type: types.CellCode, Metadata: map[string]interface{}{}}
}

func TestApplyConstrainsDirectiveCell(t *testing.T) {
	reg := widget.NewRegistry()
	h := &recordingHandle{}
	reg.Attach("c1", h)

	pass := NewHeightConstraint(reg)
	pass.Apply([]types.Cell{constrainedCell("c1", 200)})

	if len(h.foldCalls) != 1 || !h.foldCalls[0] {
		t.Fatalf("expected one fold-enable call, got %v", h.foldCalls)
	}
	if len(h.sizeCalls) != 1 {
		t.Fatalf("expected one size call, got %d", len(h.sizeCalls))
	}
	if h.sizeCalls[0][0] != types.Unconstrained {
		t.Errorf("width must be unconstrained, got %d", h.sizeCalls[0][0])
	}
	if h.sizeCalls[0][1] != 200 {
		t.Errorf("expected height 200, got %d", h.sizeCalls[0][1])
	}
}

func TestApplySkipsCellWithoutDirective(t *testing.T) {
	reg := widget.NewRegistry()
	h := &recordingHandle{}
	reg.Attach("c1", h)

	pass := NewHeightConstraint(reg)
	pass.Apply([]types.Cell{plainCell("c1")})

	if len(h.foldCalls) != 0 || len(h.sizeCalls) != 0 {
		t.Error("cell without directive must be left untouched")
	}
}

func TestApplySkipsUnrenderedWidget(t *testing.T) {
	pass := NewHeightConstraint(widget.NewRegistry())

	// Directive present but no widget attached; must be a silent no-op
	pass.Apply([]types.Cell{constrainedCell("c1", 100)})
}

func TestApplyIsIdempotent(t *testing.T) {
	reg := widget.NewRegistry()
	h := &recordingHandle{}
	reg.Attach("c1", h)

	cells := []types.Cell{constrainedCell("c1", 150), plainCell("c2")}
	pass := NewHeightConstraint(reg)

	pass.Apply(cells)
	once := h.state
	pass.Apply(cells)

	if h.state != once {
		t.Errorf("second apply changed widget state: %+v vs %+v", once, h.state)
	}
}

func TestApplyDoesNotMutateMetadata(t *testing.T) {
	reg := widget.NewRegistry()
	reg.Attach("c1", &recordingHandle{})

	cells := []types.Cell{constrainedCell("c1", 80), plainCell("c2")}
	want := []map[string]interface{}{
		{"nbgrader": map[string]interface{}{"max_height": float64(80)}},
		{},
	}

	NewHeightConstraint(reg).Apply(cells)

	for i, cell := range cells {
		if !reflect.DeepEqual(cell.Metadata, want[i]) {
			t.Errorf("cell %d metadata mutated: %v", i, cell.Metadata)
		}
	}
}

func TestApplyTargetsOnlyDirectiveCell(t *testing.T) {
	reg := widget.NewRegistry()
	handles := map[string]*recordingHandle{
		"c1": {}, "c2": {}, "c3": {},
	}
	for id, h := range handles {
		reg.Attach(id, h)
	}

	cells := []types.Cell{plainCell("c1"), constrainedCell("c2", 50), plainCell("c3")}
	NewHeightConstraint(reg).Apply(cells)

	if len(handles["c1"].sizeCalls) != 0 || len(handles["c3"].sizeCalls) != 0 {
		t.Error("cells without directives were mutated")
	}

	h2 := handles["c2"]
	if len(h2.sizeCalls) != 1 || h2.sizeCalls[0][1] != 50 || !h2.state.FoldEnabled {
		t.Errorf("expected exactly cell c2 constrained to 50, got %+v", h2)
	}
}

func TestApplySkipsMalformedDirective(t *testing.T) {
	reg := widget.NewRegistry()
	h := &recordingHandle{}
	reg.Attach("c1", h)

	cells := []types.Cell{{
		ID:       "c1",
		Type:     types.CellCode,
		Metadata: map[string]interface{}{"nbgrader": "broken"},
	}}
	NewHeightConstraint(reg).Apply(cells)

	if len(h.foldCalls) != 0 || len(h.sizeCalls) != 0 {
		t.Error("malformed directive must be treated as absent")
	}
}
