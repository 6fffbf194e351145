package memory

import (
	"github.com/charmbracelet/log"
)

// ProgressBackend persists a single level number.
type ProgressBackend interface {
	// LoadLevel returns the saved level and whether one was saved.
	LoadLevel() (level int, ok bool, err error)
	SaveLevel(level int) error
}

// ProgressStore keeps the player's current level. Backend failures degrade to
// in-memory progress and are only logged.
type ProgressStore struct {
	backend  ProgressBackend
	maxLevel int
	level    int
	logger   *log.Logger
}

// NewProgressStore wraps a backend. A nil backend keeps progress in memory only.
func NewProgressStore(backend ProgressBackend, maxLevel int, logger *log.Logger) *ProgressStore {
	if logger == nil {
		logger = discardLogger()
	}
	return &ProgressStore{
		backend:  backend,
		maxLevel: maxLevel,
		level:    1,
		logger:   logger,
	}
}

// Load returns the saved level, or 1 when nothing usable is saved.
func (p *ProgressStore) Load() int {
	if p.backend == nil {
		return p.level
	}

	level, ok, err := p.backend.LoadLevel()
	switch {
	case err != nil:
		p.logger.Warn("could not load progress, starting at level 1", "error", err)
		level = 1
	case !ok:
		level = 1
	case level < 1 || level > p.maxLevel:
		p.logger.Debug("saved level out of range, resetting", "level", level)
		level = 1
	}

	p.level = level
	return level
}

// Save records level. The in-memory value is updated even if the backend fails.
func (p *ProgressStore) Save(level int) {
	p.level = level
	if p.backend == nil {
		return
	}
	if err := p.backend.SaveLevel(level); err != nil {
		p.logger.Warn("could not save progress", "level", level, "error", err)
	}
}

// Level returns the last loaded or saved level.
func (p *ProgressStore) Level() int {
	return p.level
}

// MemoryBackend is a ProgressBackend that lives only as long as the process.
type MemoryBackend struct {
	level int
	saved bool
}

// LoadLevel implements ProgressBackend.
func (m *MemoryBackend) LoadLevel() (int, bool, error) {
	return m.level, m.saved, nil
}

// SaveLevel implements ProgressBackend.
func (m *MemoryBackend) SaveLevel(level int) error {
	m.level = level
	m.saved = true
	return nil
}
