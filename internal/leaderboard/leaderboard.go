// apps/go-server/internal/leaderboard/leaderboard.go
//
// Top-N high score table persisted in a key-value store.
//
// Layout: one JSON array of {"name","score"} objects under a single key
// (default "memoryHighScores"), sorted by score descending, at most Limit long.
//
// Reads never fail: a missing, unreadable or corrupt record is treated as an
// empty table so a damaged store cannot block the game.

package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/robalobadob/memorypairs/apps/go-server/internal/game"
	"github.com/robalobadob/memorypairs/apps/go-server/internal/kv"
)

const (
	DefaultKey   = "memoryHighScores"
	DefaultLimit = 5
)

// Entry is one row of the table.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Board reads and updates the high score table.
type Board struct {
	mu     sync.Mutex // serializes read-modify-write in RecordScore
	store  kv.Store
	key    string
	limit  int
	logger zerolog.Logger
}

var _ game.Recorder = (*Board)(nil)

// Option configures a Board.
type Option func(*Board)

// WithKey sets the storage key.
func WithKey(key string) Option {
	return func(b *Board) {
		if key != "" {
			b.key = key
		}
	}
}

// WithLimit sets how many entries are kept.
func WithLimit(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.limit = n
		}
	}
}

// WithLogger sets the logger used for degraded reads.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Board) { b.logger = l }
}

// New returns a Board over store.
func New(store kv.Store, opts ...Option) *Board {
	b := &Board{
		store:  store,
		key:    DefaultKey,
		limit:  DefaultLimit,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RecordScore inserts name/score, keeps the best Limit entries and writes the
// table back. Equal scores keep insertion order. Only a failed write is returned.
func (b *Board) RecordScore(ctx context.Context, name string, score int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.load(ctx)
	entries = Insert(entries, Entry{Name: name, Score: score}, b.limit)

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("leaderboard: encode: %w", err)
	}
	if err := b.store.Set(ctx, b.key, data); err != nil {
		return fmt.Errorf("leaderboard: write: %w", err)
	}
	return nil
}

// TopScores returns up to Limit entries, best first.
func (b *Board) TopScores(ctx context.Context) []Entry {
	entries := b.load(ctx)
	sortEntries(entries)
	if len(entries) > b.limit {
		entries = entries[:b.limit]
	}
	return entries
}

// load reads the stored table; every failure degrades to an empty table.
func (b *Board) load(ctx context.Context) []Entry {
	data, err := b.store.Get(ctx, b.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []Entry{}
	}
	if err != nil {
		b.logger.Warn().Err(err).Str("key", b.key).Msg("leaderboard read failed; using empty table")
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		b.logger.Warn().Err(err).Str("key", b.key).Msg("leaderboard record corrupt; using empty table")
		return []Entry{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries
}

// Insert returns a new table with e added, stable-sorted by score descending
// and truncated to limit. entries is not modified.
func Insert(entries []Entry, e Entry, limit int) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, e)
	sortEntries(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}
