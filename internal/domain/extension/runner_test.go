package extension

import (
	"testing"

	"github.com/notekit/cellview/internal/infrastructure/logging"
	"github.com/notekit/cellview/internal/shared/types"
)

// orderedPass records the order passes run in
type orderedPass struct {
	name string
	log  *[]string
	seen int
}

func (p *orderedPass) Name() string { return p.name }

func (p *orderedPass) Apply(cells []types.Cell) {
	p.seen += len(cells)
	*p.log = append(*p.log, p.name)
}

func TestRunnerOrder(t *testing.T) {
	r := NewRunner(logging.NewNop())

	var order []string
	r.Register(&orderedPass{name: "first", log: &order})
	r.Register(&orderedPass{name: "second", log: &order})

	r.Run("s1", []types.Cell{{ID: "c1"}})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("expected registration order, got %v", order)
	}
}

func TestRunnerDocumentLoaded(t *testing.T) {
	r := NewRunner(logging.NewNop())

	var order []string
	p := &orderedPass{name: "only", log: &order}
	r.Register(p)

	r.DocumentLoaded("s1", []types.Cell{{ID: "c1"}, {ID: "c2"}})

	if p.seen != 2 {
		t.Errorf("expected pass to see 2 cells, saw %d", p.seen)
	}
}

func TestRunnerPasses(t *testing.T) {
	r := NewRunner(logging.NewNop())

	var order []string
	r.Register(&orderedPass{name: "height_constraint", log: &order})

	names := r.Passes()
	if len(names) != 1 || names[0] != "height_constraint" {
		t.Errorf("unexpected pass names: %v", names)
	}
}

func TestRunnerEmpty(t *testing.T) {
	// A runner with no passes still completes
	NewRunner(logging.NewNop()).Run("s1", nil)
}
