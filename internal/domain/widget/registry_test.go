package widget

import (
	"testing"

	"github.com/notekit/cellview/internal/shared/types"
)

type fakeHandle struct {
	state State
}

func (f *fakeHandle) SetFoldEnabled(enabled bool) {
	f.state.FoldEnabled = enabled
}

func (f *fakeHandle) SetSize(width, height types.Length) {
	f.state.Width = width
	f.state.Height = height
}

func (f *fakeHandle) State() State {
	return f.state
}

func TestAttachFind(t *testing.T) {
	r := NewRegistry()
	h := &fakeHandle{}

	r.Attach("cell-0", h)

	got, ok := r.Find("cell-0")
	if !ok {
		t.Fatal("expected to find attached widget")
	}
	if got != h {
		t.Error("expected the attached handle back")
	}
}

func TestFindMissing(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Find("cell-0"); ok {
		t.Error("expected miss for unrendered cell")
	}
}

func TestDetach(t *testing.T) {
	r := NewRegistry()
	r.Attach("cell-0", &fakeHandle{})
	r.Detach("cell-0")

	if _, ok := r.Find("cell-0"); ok {
		t.Error("expected widget to be gone after detach")
	}
	if r.Count() != 0 {
		t.Errorf("expected count 0, got %d", r.Count())
	}
}

func TestAttachReplaces(t *testing.T) {
	r := NewRegistry()
	first := &fakeHandle{}
	second := &fakeHandle{}

	r.Attach("cell-0", first)
	r.Attach("cell-0", second)

	got, _ := r.Find("cell-0")
	if got != second {
		t.Error("expected the replacement handle")
	}
	if r.Count() != 1 {
		t.Errorf("expected count 1, got %d", r.Count())
	}
}

func TestStates(t *testing.T) {
	r := NewRegistry()
	h := &fakeHandle{state: State{CellID: "cell-0"}}
	h.SetFoldEnabled(true)
	h.SetSize(types.Unconstrained, 200)
	r.Attach("cell-0", h)

	states := r.States()
	if len(states) != 1 {
		t.Fatalf("expected 1 state, got %d", len(states))
	}
	if states[0].Height != 200 || !states[0].FoldEnabled {
		t.Errorf("unexpected state: %+v", states[0])
	}
	if states[0].Width.Constrained() {
		t.Error("width should be unconstrained")
	}
}
