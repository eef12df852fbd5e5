package session

import (
	"testing"

	"github.com/notekit/cellview/internal/domain/extension"
	"github.com/notekit/cellview/internal/domain/widget"
	"github.com/notekit/cellview/internal/infrastructure/logging"
	"github.com/notekit/cellview/internal/shared/types"
)

const testNotebook = `{
	"nbformat": 4,
	"nbformat_minor": 5,
	"metadata": {},
	"cells": [
		{"id": "c1", "cell_type": "code", "source": "x = 1", "metadata": {}},
		{"id": "c2", "cell_type": "code", "source": "y = 2",
		 "metadata": {"nbgrader": {"max_height": 120}}}
	]
}`

type stubHandle struct {
	fold   bool
	width  types.Length
	height types.Length
}

func (s *stubHandle) SetFoldEnabled(enabled bool) { s.fold = enabled }

func (s *stubHandle) SetSize(width, height types.Length) { s.width, s.height = width, height }

func newTestManager() *Manager {
	factory := func(w *widget.Registry) *extension.Runner {
		r := extension.NewRunner(logging.NewNop())
		r.Register(extension.NewHeightConstraint(w))
		return r
	}
	return NewManager(factory, logging.NewNop())
}

func TestOpen(t *testing.T) {
	m := newTestManager()

	s, err := m.Open("hw1.ipynb", []byte(testNotebook))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if s.Name != "hw1.ipynb" {
		t.Errorf("expected name hw1.ipynb, got %s", s.Name)
	}
	if s.State != types.SessionActive {
		t.Errorf("expected active state, got %s", s.State)
	}
	if s.CellCount != 2 {
		t.Errorf("expected 2 cells, got %d", s.CellCount)
	}
}

func TestOpenRejectsBadNotebook(t *testing.T) {
	m := newTestManager()

	if _, err := m.Open("bad", []byte(`{"nbformat": 2}`)); err == nil {
		t.Fatal("expected error for unsupported notebook")
	}
}

func TestAttachAndRunPasses(t *testing.T) {
	m := newTestManager()
	s, _ := m.Open("hw1.ipynb", []byte(testNotebook))

	h := &stubHandle{}
	if err := m.Attach(s.ID, "c2", h); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	if err := m.RunPasses(s.ID); err != nil {
		t.Fatalf("RunPasses failed: %v", err)
	}

	if !h.fold {
		t.Error("expected fold to be enabled")
	}
	if h.height != 120 {
		t.Errorf("expected height 120, got %d", h.height)
	}
	if h.width != types.Unconstrained {
		t.Errorf("expected unconstrained width, got %d", h.width)
	}
}

func TestAttachUnknownCell(t *testing.T) {
	m := newTestManager()
	s, _ := m.Open("hw1.ipynb", []byte(testNotebook))

	if err := m.Attach(s.ID, "nope", &stubHandle{}); err == nil {
		t.Error("expected error for unknown cell")
	}
}

func TestAttachUnknownSession(t *testing.T) {
	m := newTestManager()

	if err := m.Attach("missing", "c1", &stubHandle{}); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestRunPassesUnknownSession(t *testing.T) {
	m := newTestManager()

	if err := m.RunPasses("missing"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestCells(t *testing.T) {
	m := newTestManager()
	s, _ := m.Open("hw1.ipynb", []byte(testNotebook))

	cells, ok := m.Cells(s.ID)
	if !ok {
		t.Fatal("expected cells")
	}
	if len(cells) != 2 || cells[0].ID != "c1" || cells[1].ID != "c2" {
		t.Errorf("unexpected cells: %v", cells)
	}
}

func TestClose(t *testing.T) {
	m := newTestManager()
	s, _ := m.Open("hw1.ipynb", []byte(testNotebook))

	if !m.Close(s.ID) {
		t.Fatal("Close failed")
	}
	if _, ok := m.Get(s.ID); ok {
		t.Error("session should be gone after close")
	}
	if m.Close(s.ID) {
		t.Error("closing twice should report false")
	}
}

func TestStats(t *testing.T) {
	m := newTestManager()
	s1, _ := m.Open("a.ipynb", []byte(testNotebook))
	m.Open("b.ipynb", []byte(testNotebook))
	m.Attach(s1.ID, "c1", &stubHandle{})

	stats := m.Stats()
	if stats.TotalSessions != 2 || stats.ActiveSessions != 2 {
		t.Errorf("unexpected session counts: %+v", stats)
	}
	if stats.TotalCells != 4 {
		t.Errorf("expected 4 total cells, got %d", stats.TotalCells)
	}
	if stats.TotalWidgets != 1 {
		t.Errorf("expected 1 widget, got %d", stats.TotalWidgets)
	}
}

func TestDetach(t *testing.T) {
	m := newTestManager()
	s, _ := m.Open("hw1.ipynb", []byte(testNotebook))
	m.Attach(s.ID, "c2", &stubHandle{})

	m.Detach(s.ID, "c2")

	if stats := m.Stats(); stats.TotalWidgets != 0 {
		t.Errorf("expected 0 widgets after detach, got %d", stats.TotalWidgets)
	}
}
