package extension

import (
	"time"

	"go.uber.org/zap"

	"github.com/notekit/cellview/internal/infrastructure/logging"
	"github.com/notekit/cellview/internal/infrastructure/monitoring"
	"github.com/notekit/cellview/internal/shared/types"
)

// Runner executes the registered passes, in registration order, over a
// document's cells. One runner is built per session, bound to that
// session's widget registry through the passes it holds.
type Runner struct {
	passes  []Pass
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewRunner creates an empty runner
func NewRunner(logger *logging.Logger) *Runner {
	return &Runner{logger: logger}
}

// WithMetrics adds pass metrics tracking to the runner
func (r *Runner) WithMetrics(metrics *monitoring.Metrics) *Runner {
	r.metrics = metrics
	return r
}

// Register appends a pass to the run order
func (r *Runner) Register(p Pass) {
	r.passes = append(r.passes, p)
}

// Passes returns the registered pass names in run order
func (r *Runner) Passes() []string {
	names := make([]string, 0, len(r.passes))
	for _, p := range r.passes {
		names = append(names, p.Name())
	}
	return names
}

// DocumentLoaded is the extension-load lifecycle hook, fired once when
// the host initializes a document session.
func (r *Runner) DocumentLoaded(sessionID string, cells []types.Cell) {
	r.Run(sessionID, cells)
}

// Run applies every registered pass to the cells. Passes have no failure
// mode; a run always completes.
func (r *Runner) Run(sessionID string, cells []types.Cell) {
	for _, p := range r.passes {
		start := time.Now()
		p.Apply(cells)

		if r.metrics != nil {
			r.metrics.RecordPassRun(p.Name(), time.Since(start))
		}
		r.logger.Debug("pass applied",
			zap.String("pass", p.Name()),
			zap.String("session_id", sessionID),
			zap.Int("cells", len(cells)),
		)
	}
}
