// apps/go-server/internal/kv/kv.go
//
// Durable key-value storage used by the leaderboard.
// Implementations:
//   - memory.go: map-backed, process lifetime only (tests, LEADERBOARD_BACKEND=memory).
//   - sqlite.go: single-file SQLite database (default).
//   - redis.go:  Redis server.
//
// Values are opaque bytes; callers own the encoding.

package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("kv: key not found")

// Store defines the key-value persistence interface.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the underlying resources.
	Close() error
}
