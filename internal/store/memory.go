// apps/go-server/internal/store/memory.go
//
// In-memory registry of active games for the HTTP layer.
//
// Characteristics:
//   - Stores *Table values keyed by game ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; finished leaderboard scores are
//     persisted separately.
//   - Idle tables are dropped by Prune.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/memorypairs/apps/go-server/internal/game"
)

// ErrNotFound is returned by Get for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// Table is one active game: the session plus the event buffer its observer writes to.
// Callers must hold Mu while touching Session, Events or LastSeen.
type Table struct {
	Mu       sync.Mutex
	ID       string
	Session  *game.Session
	Events   *game.EventLog
	LastSeen time.Time
}

// Touch records activity on the table. Caller holds Mu.
func (t *Table) Touch() { t.LastSeen = time.Now() }

// Store defines the registry interface for active games.
type Store interface {
	// Save adds or replaces a table.
	Save(ctx context.Context, t *Table) error

	// Get retrieves a table by game ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Table, error)

	// Delete removes a table; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Prune removes tables idle since before cutoff and returns how many were removed.
	Prune(ctx context.Context, cutoff time.Time) int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex      // guards tables map
	tables map[string]*Table // keyed by Table.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{tables: make(map[string]*Table)}
}

// Save adds or replaces the table in the map.
func (m *memory) Save(ctx context.Context, t *Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[t.ID] = t
	return nil
}

// Get looks up a table by game ID.
// Returns the stored *Table or ErrNotFound if missing.
func (m *memory) Get(ctx context.Context, id string) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tables[id]; ok {
		return t, nil
	}
	return nil, ErrNotFound
}

// Delete removes the table from the map.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, id)
	return nil
}

// Prune drops every table whose LastSeen is before cutoff.
// Each table's mutex is taken briefly to read LastSeen.
func (m *memory) Prune(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, t := range m.tables {
		t.Mu.Lock()
		idle := t.LastSeen.Before(cutoff)
		t.Mu.Unlock()
		if idle {
			delete(m.tables, id)
			n++
		}
	}
	return n
}
