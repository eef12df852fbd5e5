package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/notekit/cellview/internal/domain/notebook"
	"github.com/notekit/cellview/internal/infrastructure/logging"
	"github.com/notekit/cellview/internal/shared/types"
)

// Entry is an indexed notebook from the library directory
type Entry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	Cells int    `json:"cells"`

	notebook *types.Notebook
}

// Notebook returns the parsed document for this entry
func (e *Entry) Notebook() *types.Notebook {
	return e.notebook
}

// Manager indexes notebooks found under a directory
type Manager struct {
	mu        sync.RWMutex
	notebooks map[string]*Entry // Protected by mu
	dir       string
	pattern   string
	logger    *logging.Logger
}

// NewManager creates a library over the given directory. Pattern is a
// doublestar glob matched against paths relative to dir.
func NewManager(dir, pattern string, logger *logging.Logger) *Manager {
	return &Manager{
		notebooks: make(map[string]*Entry),
		dir:       dir,
		pattern:   pattern,
		logger:    logger,
	}
}

// Load scans the library directory and (re)builds the index. A missing
// directory is not an error: the library just stays empty.
func (m *Manager) Load() error {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		m.logger.Warn("library directory not found", zap.String("dir", m.dir))
		return nil
	}

	found := make(map[string]*Entry)
	var walkMu sync.Mutex // fastwalk runs callbacks concurrently
	var failed int

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, m.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(m.dir, path)
		if err != nil {
			return err
		}
		ok, err := doublestar.Match(m.pattern, filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("invalid library pattern %q: %w", m.pattern, err)
		}
		if !ok {
			return nil
		}

		entry, err := loadEntry(path)
		walkMu.Lock()
		defer walkMu.Unlock()
		if err != nil {
			m.logger.Warn("failed to load notebook",
				zap.String("path", path),
				zap.Error(err),
			)
			failed++
			return nil
		}

		entry.ID = uniqueID(found, entry.ID)
		found[entry.ID] = entry
		return nil
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.notebooks = found
	m.mu.Unlock()

	m.logger.Info("library loaded",
		zap.String("dir", m.dir),
		zap.Int("notebooks", len(found)),
		zap.Int("failed", failed),
	)
	return nil
}

// List returns all indexed entries sorted by ID
func (m *Manager) List() []*Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]*Entry, 0, len(m.notebooks))
	for _, e := range m.notebooks {
		entryCopy := *e
		entries = append(entries, &entryCopy)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Get retrieves an entry by ID
func (m *Manager) Get(id string) (*Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.notebooks[id]
	if !ok {
		return nil, false
	}
	entryCopy := *e
	return &entryCopy, true
}

// Count returns the number of indexed notebooks
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.notebooks)
}

func loadEntry(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	nb, err := notebook.Parse(data)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	nb.Name = name

	return &Entry{
		ID:       slug(name),
		Name:     name,
		Path:     path,
		Cells:    len(nb.Cells),
		notebook: nb,
	}, nil
}

// slug derives a stable library ID from a file name
func slug(name string) string {
	s := strings.TrimSuffix(name, filepath.Ext(name))
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

// uniqueID disambiguates colliding slugs from different subdirectories
func uniqueID(existing map[string]*Entry, id string) string {
	if _, taken := existing[id]; !taken {
		return id
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", id, i)
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}
