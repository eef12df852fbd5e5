package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/notekit/cellview/internal/domain/extension"
	"github.com/notekit/cellview/internal/domain/notebook"
	"github.com/notekit/cellview/internal/domain/widget"
	"github.com/notekit/cellview/internal/infrastructure/logging"
	"github.com/notekit/cellview/internal/infrastructure/monitoring"
	"github.com/notekit/cellview/internal/shared/types"
)

// RunnerFactory builds the extension runner for a newly opened session,
// bound to that session's widget registry.
type RunnerFactory func(widgets *widget.Registry) *extension.Runner

// Document is a live document session
type Document struct {
	ID        string
	Name      string
	State     types.SessionState
	CreatedAt time.Time

	notebook *types.Notebook
	widgets  *widget.Registry
	runner   *extension.Runner
}

// Manager orchestrates document session lifecycle
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Document // Protected by mu
	newRunner RunnerFactory
	logger    *logging.Logger
	metrics   *monitoring.Metrics
}

// NewManager creates a new session manager
func NewManager(newRunner RunnerFactory, logger *logging.Logger) *Manager {
	return &Manager{
		sessions:  make(map[string]*Document),
		newRunner: newRunner,
		logger:    logger,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Open parses raw notebook JSON and opens a session for it
func (m *Manager) Open(name string, content []byte) (*types.Session, error) {
	nb, err := notebook.Parse(content)
	if err != nil {
		return nil, err
	}
	return m.OpenNotebook(name, nb)
}

// OpenNotebook opens a session for an already parsed notebook and fires
// the extension-load hook.
func (m *Manager) OpenNotebook(name string, nb *types.Notebook) (*types.Session, error) {
	if nb == nil {
		return nil, fmt.Errorf("notebook is required")
	}

	widgets := widget.NewRegistry()
	doc := &Document{
		ID:        uuid.New().String(),
		Name:      name,
		State:     types.SessionActive,
		CreatedAt: time.Now(),
		notebook:  nb,
		widgets:   widgets,
		runner:    m.newRunner(widgets),
	}

	m.mu.Lock()
	m.sessions[doc.ID] = doc
	m.mu.Unlock()

	// Extension-load hook: fired once per session initialization
	doc.runner.DocumentLoaded(doc.ID, nb.Cells)

	m.logger.Info("session opened",
		zap.String("session_id", doc.ID),
		zap.String("name", name),
		zap.Int("cells", len(nb.Cells)),
	)
	m.recordGauges()
	if m.metrics != nil {
		m.metrics.IncSessionsOpened()
	}

	return snapshot(doc), nil
}

// Get retrieves a session snapshot by ID
func (m *Manager) Get(id string) (*types.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return snapshot(doc), true
}

// List returns snapshots of all sessions
func (m *Manager) List() []*types.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]*types.Session, 0, len(m.sessions))
	for _, doc := range m.sessions {
		sessions = append(sessions, snapshot(doc))
	}
	return sessions
}

// Cells returns the session's cell sequence in document order
func (m *Manager) Cells(id string) ([]types.Cell, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	cells := make([]types.Cell, len(doc.notebook.Cells))
	copy(cells, doc.notebook.Cells)
	return cells, true
}

// Attach registers a rendered editor widget for a cell
func (m *Manager) Attach(id, cellID string, h widget.Handle) error {
	m.mu.RLock()
	doc, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("session not found: %s", id)
	}

	if !hasCell(doc.notebook, cellID) {
		return fmt.Errorf("unknown cell: %s", cellID)
	}

	doc.widgets.Attach(cellID, h)
	m.recordGauges()
	return nil
}

// Detach removes a torn-down editor widget
func (m *Manager) Detach(id, cellID string) {
	m.mu.RLock()
	doc, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return
	}

	doc.widgets.Detach(cellID)
	m.recordGauges()
}

// RunPasses re-applies the session's extension passes, at the host's
// request (e.g. after a re-render). Passes are idempotent, so re-runs
// are always safe.
func (m *Manager) RunPasses(id string) error {
	m.mu.RLock()
	doc, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("session not found: %s", id)
	}

	doc.runner.Run(doc.ID, doc.notebook.Cells)
	return nil
}

// WidgetStates returns the applied widget states for inspection
func (m *Manager) WidgetStates(id string) ([]widget.State, bool) {
	m.mu.RLock()
	doc, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return doc.widgets.States(), true
}

// Close destroys a session
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	doc, ok := m.sessions[id]
	if ok {
		doc.State = types.SessionClosed
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if ok {
		m.logger.Info("session closed", zap.String("session_id", id))
		m.recordGauges()
	}
	return ok
}

// Stats returns manager statistics
func (m *Manager) Stats() types.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.Stats{}
	for _, doc := range m.sessions {
		stats.TotalSessions++
		if doc.State == types.SessionActive {
			stats.ActiveSessions++
		}
		stats.TotalCells += len(doc.notebook.Cells)
		stats.TotalWidgets += doc.widgets.Count()
	}
	return stats
}

func (m *Manager) recordGauges() {
	if m.metrics == nil {
		return
	}
	stats := m.Stats()
	m.metrics.SetSessionsActive(stats.ActiveSessions)
	m.metrics.SetWidgetsAttached(stats.TotalWidgets)
}

func snapshot(doc *Document) *types.Session {
	return &types.Session{
		ID:        doc.ID,
		Name:      doc.Name,
		State:     doc.State,
		CreatedAt: doc.CreatedAt,
		CellCount: len(doc.notebook.Cells),
		Widgets:   doc.widgets.Count(),
	}
}

func hasCell(nb *types.Notebook, cellID string) bool {
	for _, cell := range nb.Cells {
		if cell.ID == cellID {
			return true
		}
	}
	return false
}
