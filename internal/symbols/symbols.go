// apps/go-server/internal/symbols/symbols.go
//
// Provides the ordered card-face alphabet for the game engine.
//
// Responsibilities:
//   - Load the alphabet from a file (SYMBOLS_FILE) or fall back to the embedded default.
//   - Normalize: trim, skip blanks and "#" comments, drop repeated symbols.
//
// The hard level needs 32 distinct symbols; the embedded list has 33.
// Order matters: a board of P pairs always uses the first P symbols.

package symbols

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/robalobadob/memorypairs/apps/go-server/assets"
)

var (
	defaultOnce sync.Once
	defaultList []string
	defaultErr  error
)

// Default returns the embedded alphabet. The slice is shared; do not modify it.
// Returns nil if the embedded file is unreadable, which the deck builder reports
// as a configuration error.
func Default() []string {
	defaultOnce.Do(func() {
		var raw []string
		raw, defaultErr = assets.SymbolsList()
		defaultList = dedupe(raw)
	})
	return defaultList
}

// Load reads an alphabet from path, one symbol per line.
// An empty path returns the embedded default.
func Load(path string) ([]string, error) {
	if path == "" {
		list := Default()
		if defaultErr != nil {
			return nil, fmt.Errorf("symbols: embedded list: %w", defaultErr)
		}
		return list, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("symbols: %w", err)
	}
	defer f.Close()
	raw, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("symbols: read %s: %w", path, err)
	}
	list := dedupe(raw)
	if len(list) == 0 {
		return nil, errors.New("symbols: alphabet is empty")
	}
	return list, nil
}

// dedupe keeps the first occurrence of each symbol.
func dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
