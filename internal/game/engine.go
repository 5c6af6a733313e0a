// apps/go-server/internal/game/engine.go
//
// Core game engine for a single memory-pairs session.
// Responsibilities:
//   - Build the board for the chosen difficulty (see deck.go).
//   - Apply card selections: reveal, pair up, evaluate the turn.
//   - Score turns through the scoring policy (see scoring.go).
//   - Track state transitions: idle → one_selected → evaluating → idle / won.
//
// Notes:
//   - A mismatch leaves both cards face up and the board locked until
//     ResolveMismatch is called; the engine owns no timers.
//   - Visible changes are reported to the Observer; the final score of a won
//     game goes to the Recorder exactly once.
//   - A Session is not safe for concurrent use.
package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog"

	"github.com/robalobadob/memorypairs/apps/go-server/internal/symbols"
)

// noCard marks an empty selection slot.
const noCard = -1

// Session holds the state of one game.
type Session struct {
	name       string
	difficulty Difficulty
	cards      []Card
	score      int
	matched    int
	total      int
	moves      int
	phase      Phase
	first      int
	second     int

	alphabet []string
	rng      *rand.Rand
	observer Observer
	recorder Recorder
	logger   zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithAlphabet sets the ordered symbol alphabet. Defaults to symbols.Default().
func WithAlphabet(alphabet []string) Option {
	return func(s *Session) { s.alphabet = alphabet }
}

// WithRand sets the shuffle source. Use a seeded source for reproducible boards.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithObserver sets the receiver of state-change callbacks.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithRecorder sets where the final score goes when the game is won.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New constructs a session for name at difficulty d and deals the first board.
func New(name string, d Difficulty, opts ...Option) (*Session, error) {
	s := &Session{
		observer: nopObserver{},
		logger:   zerolog.Nop(),
		first:    noCard,
		second:   noCard,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.alphabet == nil {
		s.alphabet = symbols.Default()
	}
	if err := s.Reset(name, d); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset starts a new game on this session, discarding any pending turn.
// On error the session is left unchanged.
func (s *Session) Reset(name string, d Difficulty) error {
	if !IsValidName(name) {
		return ErrInvalidName
	}
	cards, err := BuildDeck(d, s.alphabet, s.rng)
	if err != nil {
		return err
	}
	s.name = strings.TrimSpace(name)
	s.difficulty = d
	s.cards = cards
	s.score = 0
	s.matched = 0
	s.total = d.Pairs()
	s.moves = 0
	s.phase = PhaseIdle
	s.first, s.second = noCard, noCard
	s.logger.Debug().Str("player", s.name).Str("difficulty", string(d)).Int("cards", len(cards)).Msg("board dealt")
	return nil
}

// SelectCard applies a click on card id.
//
// Returns OutcomeIgnored with a nil error when the board is locked, the game
// is over, id is the card already picked this turn, or the card is matched.
// An id outside the board returns ErrNoSuchCard.
//
// The second pick of a turn is evaluated immediately:
//   - pair → both cards matched, +5; OutcomeWon if it was the last pair.
//   - no pair → −3 (floored at 0), board stays locked until ResolveMismatch.
func (s *Session) SelectCard(ctx context.Context, id int) (Outcome, error) {
	if id < 0 || id >= len(s.cards) {
		return OutcomeIgnored, fmt.Errorf("%w: %d", ErrNoSuchCard, id)
	}
	if s.Locked() || s.phase == PhaseWon {
		return OutcomeIgnored, nil
	}
	if s.phase == PhaseOneSelected && id == s.first {
		return OutcomeIgnored, nil
	}
	c := &s.cards[id]
	if c.State == Matched {
		return OutcomeIgnored, nil
	}

	c.State = Revealed
	s.observer.CardRevealed(id, c.Symbol)

	if s.phase == PhaseIdle {
		s.first = id
		s.phase = PhaseOneSelected
		return OutcomeRevealed, nil
	}

	s.second = id
	s.phase = PhaseEvaluating
	return s.evaluate(ctx), nil
}

// evaluate scores the two revealed cards of the current turn.
func (s *Session) evaluate(ctx context.Context) Outcome {
	a, b := &s.cards[s.first], &s.cards[s.second]
	s.moves++

	if a.Symbol != b.Symbol {
		s.setScore(ApplyDelta(s.score, ScoreDelta(false)))
		return OutcomeMismatch
	}

	a.State, b.State = Matched, Matched
	s.observer.CardMatched(a.ID)
	s.observer.CardMatched(b.ID)
	s.setScore(ApplyDelta(s.score, ScoreDelta(true)))
	s.matched++
	s.endTurn()

	if s.matched < s.total {
		return OutcomeMatch
	}
	s.phase = PhaseWon
	s.observer.GameWon(s.score)
	s.logger.Info().Str("player", s.name).Int("score", s.score).Int("moves", s.moves).Msg("game won")
	if s.recorder != nil {
		// The win is final; a caller that goes away must not drop the score.
		if err := s.recorder.RecordScore(context.WithoutCancel(ctx), s.name, s.score); err != nil {
			s.logger.Error().Err(err).Str("player", s.name).Msg("record score")
		}
	}
	return OutcomeWon
}

// ResolveMismatch turns the two unmatched cards face down and unlocks the board.
// It reports false, and does nothing, when no mismatch is pending.
func (s *Session) ResolveMismatch() bool {
	if !s.Locked() {
		return false
	}
	for _, id := range [...]int{s.first, s.second} {
		s.cards[id].State = Hidden
		s.observer.CardHidden(id)
	}
	s.endTurn()
	return true
}

// endTurn clears the selection slots and unlocks the board.
func (s *Session) endTurn() {
	s.first, s.second = noCard, noCard
	s.phase = PhaseIdle
}

func (s *Session) setScore(score int) {
	s.score = score
	s.observer.ScoreChanged(score)
}

// Name returns the player name.
func (s *Session) Name() string { return s.name }

// Difficulty returns the level of the current board.
func (s *Session) Difficulty() Difficulty { return s.difficulty }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// MatchedPairs returns how many pairs have been found.
func (s *Session) MatchedPairs() int { return s.matched }

// TotalPairs returns the number of pairs on the board.
func (s *Session) TotalPairs() int { return s.total }

// Moves returns the number of evaluated turns.
func (s *Session) Moves() int { return s.moves }

// Phase returns the turn state.
func (s *Session) Phase() Phase { return s.phase }

// Locked reports whether new selections are rejected because a turn is pending.
func (s *Session) Locked() bool { return s.phase == PhaseEvaluating }

// Won reports whether every pair has been matched.
func (s *Session) Won() bool { return s.phase == PhaseWon }

// Cards returns a copy of the board.
func (s *Session) Cards() []Card {
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}
