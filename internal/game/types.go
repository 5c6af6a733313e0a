// apps/go-server/internal/game/types.go
//
// Core type definitions for the memory-pairs game engine.
// Defines:
//   - CardState: per-card visibility (hidden/revealed/matched).
//   - Card: one tile on the board, addressed by its index.
//   - Difficulty: level key with its fixed pair and column counts.
//   - Phase: turn state of a session.
//   - Outcome: what a single selection did.

package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrConfiguration is wrapped by every setup failure (unknown difficulty,
	// alphabet too small). Check with errors.Is.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidName is returned when a session is started without a usable player name.
	ErrInvalidName = errors.New("invalid player name")

	// ErrNoSuchCard is returned for a card ID outside the board.
	ErrNoSuchCard = errors.New("no such card")
)

// MaxNameLength bounds player names in runes.
const MaxNameLength = 32

// CardState represents the visibility of a single card.
// Possible values:
//   - "hidden":   face down.
//   - "revealed": face up, not yet paired.
//   - "matched":  face up for good.
type CardState string

const (
	Hidden   CardState = "hidden"
	Revealed CardState = "revealed"
	Matched  CardState = "matched"
)

// Card is a board tile. ID is its stable index in the deck.
type Card struct {
	ID     int
	Symbol string
	State  CardState
}

// Difficulty is a level key ("easy", "medium", "hard").
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

type level struct {
	pairs   int
	columns int
}

// 4x4, 6x6 and 8x8 boards.
var levels = map[Difficulty]level{
	Easy:   {pairs: 8, columns: 4},
	Medium: {pairs: 18, columns: 6},
	Hard:   {pairs: 32, columns: 8},
}

// Difficulties lists the known levels from smallest to largest board.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty maps a level key to a Difficulty.
// Unknown keys fail with ErrConfiguration; there is no default level.
func ParseDifficulty(key string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(key)))
	if _, ok := levels[d]; !ok {
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrConfiguration, key)
	}
	return d, nil
}

// Pairs returns the pair count for d, or 0 if d is unknown.
func (d Difficulty) Pairs() int { return levels[d].pairs }

// Columns returns the grid column count for d, or 0 if d is unknown.
func (d Difficulty) Columns() int { return levels[d].columns }

// Valid reports whether d is a known level.
func (d Difficulty) Valid() bool {
	_, ok := levels[d]
	return ok
}

// Phase is the turn state of a session.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseOneSelected Phase = "one_selected"
	PhaseEvaluating  Phase = "evaluating"
	PhaseWon         Phase = "won"
)

// Outcome reports the effect of a SelectCard call.
// OutcomeWon is distinct from OutcomeMatch so callers can pace the victory screen.
type Outcome string

const (
	OutcomeIgnored  Outcome = "ignored"
	OutcomeRevealed Outcome = "revealed"
	OutcomeMatch    Outcome = "match"
	OutcomeMismatch Outcome = "mismatch"
	OutcomeWon      Outcome = "won"
)

// IsValidName reports whether name can start a session:
// non-empty after trimming whitespace and at most MaxNameLength runes.
func IsValidName(name string) bool {
	n := strings.TrimSpace(name)
	return n != "" && utf8.RuneCountInString(n) <= MaxNameLength
}
